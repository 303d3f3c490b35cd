package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/minerva/core/course"
	"github.com/trezcool/minerva/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db      *sql.DB
	usrRepo user.Repository
	crsRepo course.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  adduser -email EMAIL [-name FULL_NAME] [-role student|teacher] - add or update a user; the password will be prompted")
	fmt.Println("  addcourse -title TITLE -subject SUBJECT -grade GRADE -instructor NAME [-duration HOURS] [-rating RATING] [-language LANG] [-description TEXT] - seed a catalog course")
	fmt.Println("  resetpassword -email EMAIL - reset user's password")
	fmt.Println("  migrate COMMAND [ARGS] - run database migrations (up, down, status, ...)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserEmail := addUserCmd.String("email", "", "The user's email. The password will be prompted next.")
	addUserName := addUserCmd.String("name", "", "The user's full name.")
	addUserRole := addUserCmd.String("role", "", "The user's role: student or teacher.")

	addCourseCmd := flag.NewFlagSet("addcourse", flag.ExitOnError)
	addCourseTitle := addCourseCmd.String("title", "", "The course title.")
	addCourseSubject := addCourseCmd.String("subject", "", "The course subject.")
	addCourseGrade := addCourseCmd.String("grade", "", "The targeted grade level.")
	addCourseInstructor := addCourseCmd.String("instructor", "", "The instructor's name.")
	addCourseDuration := addCourseCmd.Int("duration", 1, "The course duration in hours.")
	addCourseRating := addCourseCmd.Float64("rating", 0, "The course rating (0 to 5).")
	addCourseLanguage := addCourseCmd.String("language", "English", "The course language.")
	addCourseDescription := addCourseCmd.String("description", "", "The course description.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordEmail := resetPasswordCmd.String("email", "", "The user's email. The password will be prompted next.")

	switch args[1] {
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserEmail == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			if err == errHelp {
				addUserCmd.Usage()
			}
			return err
		}
		return cli.addUser(*addUserEmail, *addUserName, *addUserRole, pwd)
	case "addcourse":
		if err := addCourseCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.addCourse(course.NewCourse{
			Title:          *addCourseTitle,
			Subject:        *addCourseSubject,
			GradeLevel:     *addCourseGrade,
			InstructorName: *addCourseInstructor,
			DurationHours:  *addCourseDuration,
			Rating:         *addCourseRating,
			Language:       *addCourseLanguage,
			Description:    *addCourseDescription,
		})
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordEmail == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			if err == errHelp {
				resetPasswordCmd.Usage()
			}
			return err
		}
		return cli.resetPassword(*resetPasswordEmail, pwd)
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		return "", errHelp
	}
	return string(pwd), nil
}
