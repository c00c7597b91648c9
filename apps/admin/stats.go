package main

import (
	"fmt"

	"github.com/smarttrack/backend/core/user"
)

func (cli *commandLine) initStore() error {
	if err := cli.store.Initialize(); err != nil {
		return err
	}
	fmt.Println("store initialized")
	return nil
}

// stats prints per-school user counts, one line per school.
func (cli *commandLine) stats() error {
	schools, err := cli.schoolSvc.All()
	if err != nil {
		return err
	}

	for _, sch := range schools {
		counts := make(map[user.Role]int, len(user.AllRoles))
		for _, role := range user.AllRoles {
			users, err := cli.usrSvc.BySchool(sch.Code, role)
			if err != nil {
				return err
			}
			counts[role] = len(users)
		}
		fmt.Printf("%s (%s): %d teachers, %d students, %d parents\n",
			sch.Code, sch.Name, counts[user.RoleTeacher], counts[user.RoleStudent], counts[user.RoleParent])
	}
	return nil
}
