package main

import (
	"context"
	"time"

	"github.com/trezcool/minerva/core"
	"github.com/trezcool/minerva/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(email, fullName, role, pwd string) error {
	var usr user.User
	var err error
	ctx := context.Background()
	email = core.CleanString(email, true /* lower */)
	now := time.Now().UTC()

	if usr, err = cli.usrRepo.GetUser(ctx, user.GetFilter{Email: email}); err != nil {
		if err != user.ErrNotFound {
			return err
		}
		usr = user.User{
			Email:     email,
			CreatedAt: now,
		}
	}
	if fullName != "" {
		usr.FullName.SetValid(core.CleanString(fullName))
	}
	if role != "" {
		usr.Role.SetValid(core.CleanString(role, true /* lower */))
	}
	usr.SetActive(true)
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	usr.UpdatedAt = now
	if _, err := cli.usrRepo.UpdateOrCreateUser(ctx, usr); err != nil {
		return err
	}
	return nil
}
