package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/smarttrack/backend/core"
	"github.com/smarttrack/backend/core/school"
	"github.com/smarttrack/backend/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	store     core.Store
	usrSvc    *user.Service
	schoolSvc *school.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  initstore - create the collections if they do not exist yet")
	fmt.Println("  resetpassword -school CODE -role ROLE -id ID - reset a user's password")
	fmt.Println("  stats - print per-school user counts")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordSchool := resetPasswordCmd.String("school", "", "The user's school code.")
	resetPasswordRole := resetPasswordCmd.String("role", "", "The user's role: Principal|Teacher|Student|Parent.")
	resetPasswordID := resetPasswordCmd.String("id", "", "The user's id. The password will be prompted next.")

	switch args[1] {
	case "initstore":
		return cli.initStore()
	case "stats":
		return cli.stats()
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordSchool == "" || *resetPasswordRole == "" || *resetPasswordID == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordSchool, user.Role(*resetPasswordRole), *resetPasswordID, string(pwd))
	default:
		cli.printUsage()
		return errHelp
	}
}
