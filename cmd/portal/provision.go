package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"medidesk/internal/apiclient"
	"medidesk/internal/auth"
	"medidesk/internal/model"
	"medidesk/internal/service"
)

// provisionEntry is one account of the provisioning file.
type provisionEntry struct {
	Username string     `json:"username" validate:"required,min=4"`
	Password string     `json:"password" validate:"required,min=6"`
	Name     string     `json:"name" validate:"required"`
	Email    string     `json:"email" validate:"required,email"`
	Role     model.Role `json:"role" validate:"required,oneof=DOCTOR LAB_STAFF PHARMACY_STAFF ADMIN"`
}

type provisioner interface {
	Login(ctx context.Context, username, password string) apiclient.Result[apiclient.LoginData]
	Logout(ctx context.Context) apiclient.Result[apiclient.Empty]
	CreateUser(ctx context.Context, u model.NewUser) apiclient.Result[model.User]
}

type provisionReport struct {
	Created int
	Failed  int
}

func provisionCmd() *cobra.Command {
	var file, username, password string
	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Create staff accounts from a JSON file through the admin API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := newLogger(cfg)

			entries, err := readEntries(file)
			if err != nil {
				return err
			}

			store := auth.NewMemoryStore()
			client := apiclient.New(cfg.APIBaseURL, cfg.APITimeout, store, logger)
			report, err := provision(cmd.Context(), client, store, username, password, entries, service.NewValidator(), logger)
			if err != nil {
				return err
			}
			logger.Info().Int("created", report.Created).Int("failed", report.Failed).Msg("provisioning finished")
			if report.Failed > 0 {
				return fmt.Errorf("%d of %d accounts failed", report.Failed, len(entries))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "users.json", "JSON array of accounts to create")
	cmd.Flags().StringVarP(&username, "username", "u", "admin", "admin username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func readEntries(path string) ([]provisionEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var entries []provisionEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return entries, nil
}

// provision signs in as admin and creates every entry. Invalid entries and
// backend refusals are counted as failed; only a failed sign-in aborts.
func provision(ctx context.Context, api provisioner, store auth.CredentialStore, username, password string, entries []provisionEntry, validate *validator.Validate, logger zerolog.Logger) (provisionReport, error) {
	var report provisionReport

	res := api.Login(ctx, username, password)
	if !res.Success {
		return report, fmt.Errorf("admin login: %w", res.Err())
	}
	if res.Data.User.Role != model.RoleAdmin {
		return report, fmt.Errorf("admin login: %s is %s, not ADMIN", username, res.Data.User.Role)
	}
	if err := store.Save(ctx, res.Data.Token, res.Data.User); err != nil {
		return report, fmt.Errorf("store token: %w", err)
	}
	defer func() {
		if out := api.Logout(ctx); !out.Success {
			logger.Warn().Str("error", out.Error).Msg("admin logout")
		}
		_ = store.Clear(ctx)
	}()

	for i, e := range entries {
		if errs := service.FieldErrors(validate.Struct(e), ""); len(errs) > 0 {
			logger.Error().Int("entry", i).Str("username", e.Username).Interface("errors", errs).Msg("invalid account")
			report.Failed++
			continue
		}
		created := api.CreateUser(ctx, model.NewUser{
			Username: e.Username,
			Password: e.Password,
			Name:     e.Name,
			Email:    e.Email,
			Role:     e.Role,
		})
		if !created.Success {
			logger.Error().Str("username", e.Username).Str("error", created.Error).Msg("create account")
			report.Failed++
			continue
		}
		logger.Info().Str("username", e.Username).Str("role", string(e.Role)).Msg("account created")
		report.Created++
	}
	return report, nil
}
