package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/staff-service/internal/auth"
	"github.com/spec-kit/staff-service/internal/config"
	"github.com/spec-kit/staff-service/internal/domain"
	"github.com/spec-kit/staff-service/internal/events"
	"github.com/spec-kit/staff-service/internal/repository"
	"github.com/spec-kit/staff-service/internal/roledir"
	apperrors "github.com/spec-kit/staff-service/pkg/util"
)

// StaffService orchestrates staff account operations.
type StaffService struct {
	staff      repository.StaffRepository
	roles      roledir.Directory
	sessions   auth.SessionStore
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// StaffDependencies encapsulates collaborator requirements for the service.
type StaffDependencies struct {
	StaffRepo  repository.StaffRepository
	Roles      roledir.Directory
	Sessions   auth.SessionStore
	Dispatcher events.Dispatcher
}

// NewStaffService builds the service.
func NewStaffService(cfg config.Config, deps StaffDependencies) *StaffService {
	return &StaffService{
		staff:      deps.StaffRepo,
		roles:      deps.Roles,
		sessions:   deps.Sessions,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// CreateStaffInput carries a validated create payload.
type CreateStaffInput struct {
	Username string
	Email    string
	Phone    string
	CNIC     string
	Password string
	Role     string
}

// StaffPatch carries the subset of fields supplied on update. Nil means the
// field was absent from the request.
type StaffPatch struct {
	Username *string
	Email    *string
	Phone    *string
	CNIC     *string
	Password *string
	Role     *string
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Staff        *domain.StaffMember
	SessionToken string
	AccessToken  string
	ExpiresAt    time.Time
}

// Login verifies credentials, opens a session and issues an access token.
// Unknown email and wrong password yield the identical error so callers
// cannot probe which addresses are registered.
func (s *StaffService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	staff, err := s.staff.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewUnauthorized("Invalid email or password!")
		}
		return nil, apperrors.MapError(err)
	}

	if err := auth.ComparePassword(staff.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("Invalid email or password!")
	}

	sessionToken, err := s.sessions.Create(ctx, staff.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	accessToken, exp, err := s.tokenMgr.GenerateToken(staff.ID, staff.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventStaffLogin, staff.ID, events.StaffLoginPayload{Email: staff.Email})

	return &LoginResult{
		Staff:        staff,
		SessionToken: sessionToken,
		AccessToken:  accessToken,
		ExpiresAt:    exp,
	}, nil
}

// Logout removes the caller's session.
func (s *StaffService) Logout(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	if err := s.sessions.Destroy(ctx, sessionToken); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// Create adds a new staff record after the role-limit and uniqueness checks.
// The limit check and the insert are separate round-trips; two concurrent
// creates can both pass the check and overfill the role.
func (s *StaffService) Create(ctx context.Context, input CreateStaffInput) (*domain.StaffMember, error) {
	email := strings.ToLower(input.Email)

	role, err := s.roles.FetchRole(ctx, input.Role)
	if err != nil {
		if err == roledir.ErrRoleNotFound {
			return nil, apperrors.NewValidationError("Invalid role ID!")
		}
		return nil, apperrors.NewInternalError(err)
	}

	occupancy, err := s.staff.CountByRole(ctx, input.Role, "")
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if occupancy >= role.Limit {
		return nil, apperrors.NewConflict("Limit Reached!! Can't Add More Staff for this role")
	}

	conflict, err := s.staff.FindConflict(ctx, repository.ConflictQuery{
		Email: &email,
		Phone: &input.Phone,
		CNIC:  &input.CNIC,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if conflict != "" {
		return nil, apperrors.NewConflict("Staff already exists!")
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	staff := &domain.StaffMember{
		Username:     input.Username,
		Email:        email,
		Phone:        input.Phone,
		CNIC:         input.CNIC,
		PasswordHash: hash,
		Role:         input.Role,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventStaffCreated, staff.ID, events.StaffCreatedPayload{
		Username: staff.Username,
		Email:    staff.Email,
		Role:     staff.Role,
	})
	return staff, nil
}

// List returns all staff records.
func (s *StaffService) List(ctx context.Context) ([]domain.StaffMember, error) {
	list, err := s.staff.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// Get fetches a single staff record by id.
func (s *StaffService) Get(ctx context.Context, id string) (*domain.StaffMember, error) {
	staff, err := s.staff.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Staff not found!")
		}
		return nil, apperrors.MapError(err)
	}
	return staff, nil
}

// Update applies a partial merge of the supplied fields after per-field
// uniqueness checks and, on role change, a role-limit check that excludes
// the record itself from the occupancy count.
func (s *StaffService) Update(ctx context.Context, id string, patch StaffPatch) (*domain.StaffMember, error) {
	if patch.Email != nil {
		lowered := strings.ToLower(*patch.Email)
		patch.Email = &lowered
	}

	current, err := s.staff.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Staff not found!")
		}
		return nil, apperrors.MapError(err)
	}

	uniqueChecks := []struct {
		name   string
		value  *string
		stored string
		makeQ  func(v *string) repository.ConflictQuery
	}{
		{"email", patch.Email, current.Email, func(v *string) repository.ConflictQuery { return repository.ConflictQuery{Email: v, ExcludeID: id} }},
		{"phone", patch.Phone, current.Phone, func(v *string) repository.ConflictQuery { return repository.ConflictQuery{Phone: v, ExcludeID: id} }},
		{"cnic", patch.CNIC, current.CNIC, func(v *string) repository.ConflictQuery { return repository.ConflictQuery{CNIC: v, ExcludeID: id} }},
	}
	for _, check := range uniqueChecks {
		if check.value == nil || *check.value == check.stored {
			continue
		}
		conflict, err := s.staff.FindConflict(ctx, check.makeQ(check.value))
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if conflict != "" {
			return nil, apperrors.NewConflict(check.name + " already exists!")
		}
	}

	if patch.Role != nil && *patch.Role != current.Role {
		role, err := s.roles.FetchRole(ctx, *patch.Role)
		if err != nil {
			if err == roledir.ErrRoleNotFound {
				return nil, apperrors.NewValidationError("Invalid role ID!")
			}
			return nil, apperrors.NewInternalError(err)
		}
		occupancy, err := s.staff.CountByRole(ctx, *patch.Role, id)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		if occupancy >= role.Limit {
			return nil, apperrors.NewConflict(
				`Limit Reached! Cannot assign more staff to the "` + role.Name + `" role.`)
		}
	}

	fields := map[string]string{}
	changed := []string{}
	setField := func(column string, value *string) {
		if value == nil {
			return
		}
		fields[column] = *value
		changed = append(changed, column)
	}
	setField("username", patch.Username)
	setField("email", patch.Email)
	setField("phone", patch.Phone)
	setField("cnic", patch.CNIC)
	setField("role", patch.Role)
	if patch.Password != nil {
		hash, err := auth.HashPassword(*patch.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		fields["password_hash"] = hash
		changed = append(changed, "password")
	}

	updated, err := s.staff.UpdateFields(ctx, id, fields)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Staff not found!")
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventStaffUpdated, updated.ID, events.StaffUpdatedPayload{ChangedFields: changed})
	return updated, nil
}

// Delete removes a staff record by id.
func (s *StaffService) Delete(ctx context.Context, id string) error {
	staff, err := s.staff.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("Staff not found!")
		}
		return apperrors.MapError(err)
	}

	if err := s.staff.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("Staff not found!")
		}
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.EventStaffDeleted, id, events.StaffDeletedPayload{Email: staff.Email})
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *StaffService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *StaffService) publish(ctx context.Context, eventType events.EventType, staffID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		StaffID:   staffID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
