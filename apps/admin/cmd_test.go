package main

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gradnet/backend/core/profile"
	dummydb "github.com/gradnet/backend/storage/database/dummy"
)

func setup(t *testing.T) *commandLine {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open(): %v", err)
	}
	return &commandLine{
		profileRepo: dummydb.NewProfileRepository(db),
	}
}

func createProfile(t *testing.T, repo profile.Repository, name, email string, isAdmin bool) profile.Profile {
	t.Helper()

	now := time.Now().UTC()
	p, err := repo.UpsertProfile(context.Background(), profile.Profile{
		ID:        uuid.New().String(),
		Email:     email,
		FullName:  name,
		IsAdmin:   isAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("createProfile(): %v", err)
	}
	return p
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, dir string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s needs a VERSION argument", command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to needs a VERSION argument"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_setAdmin(t *testing.T) {
	cli := setup(t)

	p := createProfile(t, cli.profileRepo, "Ada Lovelace", "ada@test.grad", false)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"setadmin"}, wantErr: errHelp},
		{name: "profile not found", args: []string{"setadmin", "-email", "nobody@test.grad"}, wantErr: profile.ErrNotFound},
		{name: "grant", args: []string{"setadmin", "-email", "ada@test.grad"}},
		{name: "email match is case-insensitive", args: []string{"setadmin", "-email", "ADA@test.grad"}},
		{name: "revoke", args: []string{"setadmin", "-email", "ada@test.grad", "-revoke"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			refreshed, err := cli.profileRepo.GetProfile(context.Background(), p.ID)
			if err != nil {
				t.Fatalf("GetProfile(): %v", err)
			}
			wantAdmin := tt.name != "revoke"
			if refreshed.IsAdmin != wantAdmin {
				t.Errorf("IsAdmin = %v, want %v", refreshed.IsAdmin, wantAdmin)
			}
		})
	}

	t.Run("stored email casing is ignored", func(t *testing.T) {
		grace := createProfile(t, cli.profileRepo, "Grace Hopper", "Grace.Hopper@Test.Grad", false)

		if err := cli.run([]string{"admin", "setadmin", "-email", "grace.hopper@test.grad"}); err != nil {
			t.Fatalf("cli.run() unexpected error = %v", err)
		}
		refreshed, err := cli.profileRepo.GetProfile(context.Background(), grace.ID)
		if err != nil {
			t.Fatalf("GetProfile(): %v", err)
		}
		if !refreshed.IsAdmin {
			t.Error("IsAdmin = false, want true")
		}
	})
}
