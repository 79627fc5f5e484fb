package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"medidesk/internal/apiclient"
	"medidesk/internal/audit"
	apperrors "medidesk/internal/errors"
	"medidesk/internal/model"
	"medidesk/internal/notify"
)

const userPageLimit = 10

// User modal modes.
const (
	ModeCreate = "add"
	ModeEdit   = "edit"
)

// UserInput is the user form input. Username is ignored in edit mode.
type UserInput struct {
	Username string     `json:"username"`
	Password string     `json:"password,omitempty"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Role     model.Role `json:"role"`
}

type createUserInput struct {
	Username string     `json:"username" validate:"required,min=4"`
	Password string     `json:"password" validate:"required,min=6"`
	Name     string     `json:"name" validate:"required"`
	Email    string     `json:"email" validate:"required,email"`
	Role     model.Role `json:"role" validate:"required,oneof=DOCTOR LAB_STAFF PHARMACY_STAFF ADMIN"`
}

type editUserInput struct {
	Password string     `json:"password" validate:"omitempty,min=6"`
	Name     string     `json:"name" validate:"required"`
	Email    string     `json:"email" validate:"required,email"`
	Role     model.Role `json:"role" validate:"required,oneof=DOCTOR LAB_STAFF PHARMACY_STAFF ADMIN"`
}

// UserModal is the open create or edit dialog. A typed password stays in the
// dialog across failed submits but is never echoed back; PasswordSet tells
// the form one is held, and a resubmit with an empty password reuses it.
type UserModal struct {
	Mode        string            `json:"mode"`
	UserID      string            `json:"userId,omitempty"`
	Input       UserInput         `json:"input"`
	PasswordSet bool              `json:"passwordSet,omitempty"`
	Errors      map[string]string `json:"errors,omitempty"`
	Banner      string            `json:"banner,omitempty"`
}

// UserRow is a listed user with its role badge.
type UserRow struct {
	model.User
	Badge model.Badge `json:"badge"`
}

// UserManagementView is the admin page as rendered.
type UserManagementView struct {
	Users         Resource[[]UserRow] `json:"users"`
	Modal         *UserModal          `json:"modal,omitempty"`
	PendingDelete string              `json:"pendingDelete,omitempty"`
	Busy          bool                `json:"busy"`
}

// UserManagement lists, creates, edits and deletes staff accounts.
type UserManagement struct {
	api      AdminGateway
	notes    *notify.Queue
	audit    audit.Recorder
	actor    *model.User
	validate *validator.Validate
	log      zerolog.Logger

	mu            sync.Mutex
	users         Resource[[]model.User]
	modal         *UserModal
	pendingDelete string
	action        inflight
}

// NewUserManagement creates an unloaded admin page.
func NewUserManagement(api AdminGateway, notes *notify.Queue, recorder audit.Recorder, actor *model.User, validate *validator.Validate, log zerolog.Logger) *UserManagement {
	return &UserManagement{
		api:      api,
		notes:    notes,
		audit:    recorder,
		actor:    actor,
		validate: validate,
		log:      log.With().Str("view", "user_management").Logger(),
	}
}

// Load fetches the first page of users.
func (u *UserManagement) Load(ctx context.Context) {
	u.mu.Lock()
	u.users.start()
	u.mu.Unlock()

	res := u.api.ListUsers(ctx, 1, userPageLimit)
	if !res.Success {
		u.notes.Error(res.Error)
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	u.users.finish(res)
}

// OpenCreate opens an empty create dialog.
func (u *UserManagement) OpenCreate() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.modal = &UserModal{Mode: ModeCreate}
}

// OpenEdit opens the edit dialog prefilled from a listed user.
func (u *UserManagement) OpenEdit(id string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	i := slices.IndexFunc(u.users.Data, func(x model.User) bool { return x.ID == id })
	if i < 0 {
		return fmt.Errorf("user %s: %w", id, apperrors.ErrRowNotFound)
	}
	x := u.users.Data[i]
	u.modal = &UserModal{
		Mode:   ModeEdit,
		UserID: x.ID,
		Input:  UserInput{Username: x.Username, Name: x.Name, Email: x.Email, Role: x.Role},
	}
	return nil
}

// CloseModal discards the create or edit dialog.
func (u *UserManagement) CloseModal() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.modal = nil
}

// BuildUserUpdate returns the edit payload. Username is never part of it
// and the password is only sent when set.
func BuildUserUpdate(in UserInput) model.UserUpdate {
	return model.UserUpdate{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		Role:     in.Role,
		Password: in.Password,
	}
}

// SubmitUser validates and sends the open dialog. On success the list is
// refetched and the dialog closes; on failure the dialog keeps its input.
func (u *UserManagement) SubmitUser(ctx context.Context, in UserInput) (*model.User, error) {
	u.mu.Lock()
	if u.modal == nil {
		u.mu.Unlock()
		return nil, apperrors.ErrNotOpen
	}
	modal := u.modal
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if modal.Mode == ModeEdit {
		in.Username = modal.Input.Username
	} else {
		in.Username = strings.TrimSpace(in.Username)
	}
	if in.Password == "" {
		in.Password = modal.Input.Password
	}

	var verr error
	if modal.Mode == ModeEdit {
		verr = u.validate.Struct(editUserInput{Password: in.Password, Name: in.Name, Email: in.Email, Role: in.Role})
	} else {
		verr = u.validate.Struct(createUserInput{Username: in.Username, Password: in.Password, Name: in.Name, Email: in.Email, Role: in.Role})
	}
	modal.Input = in
	modal.Errors = FieldErrors(verr, "")
	if len(modal.Errors) > 0 {
		u.mu.Unlock()
		return nil, fmt.Errorf("user: %w", apperrors.ErrValidation)
	}
	modal.Banner = ""
	mode, id := modal.Mode, modal.UserID
	u.mu.Unlock()

	if err := u.action.start(); err != nil {
		return nil, err
	}
	defer u.action.done()

	var (
		res    apiclient.Result[model.User]
		action model.AuditAction
		okMsg  string
	)
	if mode == ModeEdit {
		res = u.api.UpdateUser(ctx, id, BuildUserUpdate(in))
		action, okMsg = model.ActionUpdateUser, "User updated successfully"
	} else {
		res = u.api.CreateUser(ctx, model.NewUser{Username: in.Username, Password: in.Password, Name: in.Name, Email: in.Email, Role: in.Role})
		action, okMsg = model.ActionCreateUser, "User created successfully"
	}
	u.audit.Record(ctx, audit.Entry(u.actor, action, in.Username, res.Err()))

	if !res.Success {
		u.mu.Lock()
		if u.modal != nil {
			u.modal.Banner = res.Error
		}
		u.mu.Unlock()
		u.notes.Error(res.Error)
		return nil, fmt.Errorf("%s user: %w", mode, res.Err())
	}

	u.mu.Lock()
	u.modal = nil
	u.mu.Unlock()
	u.notes.Success(okMsg)
	u.Load(ctx)
	saved := res.Data
	return &saved, nil
}

// RequestDelete selects a user for deletion. Nothing is sent until
// ConfirmDelete.
func (u *UserManagement) RequestDelete(id string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !slices.ContainsFunc(u.users.Data, func(x model.User) bool { return x.ID == id }) {
		return fmt.Errorf("user %s: %w", id, apperrors.ErrRowNotFound)
	}
	u.pendingDelete = id
	return nil
}

// CancelDelete drops the pending deletion.
func (u *UserManagement) CancelDelete() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.pendingDelete = ""
}

// ConfirmDelete deletes the selected user. The confirmation closes whatever
// the outcome; there is no undo.
func (u *UserManagement) ConfirmDelete(ctx context.Context) error {
	u.mu.Lock()
	id := u.pendingDelete
	u.mu.Unlock()
	if id == "" {
		return apperrors.ErrNotOpen
	}
	if err := u.action.start(); err != nil {
		return err
	}
	defer u.action.done()

	res := u.api.DeleteUser(ctx, id)
	u.audit.Record(ctx, audit.Entry(u.actor, model.ActionDeleteUser, id, res.Err()))

	u.mu.Lock()
	u.pendingDelete = ""
	u.mu.Unlock()

	if !res.Success {
		u.notes.Error(res.Error)
		return fmt.Errorf("delete user: %w", res.Err())
	}
	u.notes.Success("User deleted successfully")
	u.Load(ctx)
	return nil
}

// Snapshot returns the current view.
func (u *UserManagement) Snapshot() UserManagementView {
	u.mu.Lock()
	defer u.mu.Unlock()
	rows := make([]UserRow, 0, len(u.users.Data))
	for _, x := range u.users.Data {
		rows = append(rows, UserRow{User: x, Badge: x.Role.Badge()})
	}
	v := UserManagementView{
		Users:         Resource[[]UserRow]{Data: rows, Loading: u.users.Loading, Error: u.users.Error},
		PendingDelete: u.pendingDelete,
		Busy:          u.action.active(),
	}
	if u.modal != nil {
		m := *u.modal
		m.PasswordSet = m.Input.Password != ""
		m.Input.Password = ""
		m.Errors = mergeErrors(nil, u.modal.Errors)
		v.Modal = &m
	}
	return v
}
