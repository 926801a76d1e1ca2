package main

import (
	"context"

	"github.com/gradnet/backend/core"
	"github.com/gradnet/backend/core/profile"
)

// setAdmin grants or revokes admin rights on the profile with the given email.
func (cli *commandLine) setAdmin(email string, isAdmin bool) error {
	ctx := context.Background()
	email = core.CleanString(email, true /* lower */)

	profiles, err := cli.profileRepo.QueryAllProfiles(ctx)
	if err != nil {
		return err
	}
	for _, p := range profiles {
		if core.CleanString(p.Email, true) == email {
			return cli.profileRepo.SetAdmin(ctx, p.ID, isAdmin)
		}
	}
	return profile.ErrNotFound
}
