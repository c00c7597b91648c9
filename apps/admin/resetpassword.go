package main

import (
	"github.com/smarttrack/backend/core/user"
)

func (cli *commandLine) resetPassword(schoolCode string, role user.Role, id, pwd string) error {
	return cli.usrSvc.ResetPassword(schoolCode, role, id, pwd)
}
