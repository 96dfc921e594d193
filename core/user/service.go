package user

import (
	"errors"
	"time"

	"github.com/osatria/portal/core"
)

var (
	// errors
	ErrNotFound = errors.New("user not found")
)

type (
	Repository interface {
		CreateUser(usr User) (User, error)
		GetUserByUID(uid string) (User, error)
		GetUserByEmail(email string) (User, error)
		QueryAllUsers() ([]User, error)
		// QueryLeaderboard returns up to `limit` users ordered by points
		// descending; users with zero points are excluded.
		QueryLeaderboard(limit int) ([]User, error)
		UpdateUser(usr User) (User, error)
		AddUserPoints(uid string, delta int) (User, error)
	}

	ServiceInterface interface {
		EnsureUser(idn Identity) (User, error)
		GetByUID(uid string) (User, error)
		GetByEmail(email string) (User, error)
		QueryAll() ([]User, error)
		Leaderboard() ([]User, error)
		SetRole(uid, role string) (User, error)
		AddPoints(uid string, delta int) (User, error)
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// EnsureUser upserts the program record for an authenticated identity:
// first sight creates a contributor with zero points; later sights refresh
// the provider-owned profile fields and never touch role or points.
func (svc *Service) EnsureUser(idn Identity) (User, error) {
	now := time.Now().UTC()
	email := core.CleanString(idn.Email, true /* lower */)

	usr, err := svc.repo.GetUserByUID(idn.UID)
	if err != nil {
		if err != ErrNotFound {
			return User{}, err
		}
		return svc.repo.CreateUser(User{
			UID:            idn.UID,
			Email:          email,
			DisplayName:    core.CleanString(idn.DisplayName),
			GithubUsername: core.CleanString(idn.GithubUsername, true /* lower */),
			PhotoURL:       idn.PhotoURL,
			Role:           RoleContributor,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	usr.Email = email
	usr.DisplayName = core.CleanString(idn.DisplayName)
	if gh := core.CleanString(idn.GithubUsername, true /* lower */); gh != "" {
		usr.GithubUsername = gh
	}
	if idn.PhotoURL != "" {
		usr.PhotoURL = idn.PhotoURL
	}
	usr.UpdatedAt = now
	return svc.repo.UpdateUser(usr)
}

func (svc *Service) GetByUID(uid string) (User, error) {
	return svc.repo.GetUserByUID(uid)
}

func (svc *Service) GetByEmail(email string) (User, error) {
	return svc.repo.GetUserByEmail(core.CleanString(email, true /* lower */))
}

func (svc *Service) QueryAll() ([]User, error) {
	return svc.repo.QueryAllUsers()
}

func (svc *Service) Leaderboard() ([]User, error) {
	limit := core.Conf.LeaderboardLimit
	if limit <= 0 {
		limit = 100
	}
	return svc.repo.QueryLeaderboard(limit)
}

func (svc *Service) SetRole(uid, role string) (User, error) {
	usr, err := svc.repo.GetUserByUID(uid)
	if err != nil {
		return User{}, err
	}
	usr.Role = role
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(usr)
}

func (svc *Service) AddPoints(uid string, delta int) (User, error) {
	return svc.repo.AddUserPoints(uid, delta)
}
