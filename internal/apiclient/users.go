package apiclient

import (
	"context"
	"net/http"

	"github.com/spec-kit/hospital-console/internal/domain"
)

const (
	usersPath       = "/admin/users"
	userDefaultSort = "username,asc"
)

// UserService wraps the account administration endpoints. The backend only
// serves them to ROLE_ADMIN.
type UserService struct {
	client *Client
}

func NewUserService(client *Client) *UserService {
	return &UserService{client: client}
}

func (s *UserService) List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.User], error) {
	return get[domain.Page[domain.User]](ctx, s.client, usersPath, pageQuery(page, userDefaultSort))
}

func (s *UserService) Get(ctx context.Context, id int64) (domain.User, error) {
	return get[domain.User](ctx, s.client, idPath(usersPath, id), nil)
}

func (s *UserService) Create(ctx context.Context, req domain.UserCreateRequest) (domain.User, error) {
	return send[domain.User](ctx, s.client, http.MethodPost, usersPath, req)
}

func (s *UserService) Update(ctx context.Context, id int64, req domain.UserUpdateRequest) (domain.User, error) {
	return send[domain.User](ctx, s.client, http.MethodPut, idPath(usersPath, id), req)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.client.Do(ctx, http.MethodDelete, idPath(usersPath, id), nil, nil, nil)
}

// Roles lists the role names an account can be granted.
func (s *UserService) Roles(ctx context.Context) ([]string, error) {
	return get[[]string](ctx, s.client, "/auth/roles", nil)
}
