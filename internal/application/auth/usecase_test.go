package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/pkg/jwt"
)

type stubUsuarios struct {
	porEmail map[string]*entity.Usuario
}

func newStubUsuarios() *stubUsuarios {
	return &stubUsuarios{porEmail: map[string]*entity.Usuario{}}
}

func (r *stubUsuarios) Create(u *entity.Usuario) error {
	if _, ok := r.porEmail[u.Email]; ok {
		return domain.ErrEmailExists
	}
	copia := *u
	r.porEmail[u.Email] = &copia
	return nil
}

func (r *stubUsuarios) GetByID(id string) (*entity.Usuario, error) {
	for _, u := range r.porEmail {
		if u.ID == id {
			copia := *u
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *stubUsuarios) GetByEmail(email string) (*entity.Usuario, error) {
	u, ok := r.porEmail[email]
	if !ok {
		return nil, nil
	}
	copia := *u
	return &copia, nil
}

func testUC(repo *stubUsuarios) *AuthUseCase {
	return NewAuthUseCase(repo, JWTConfig{Secret: "secreto-de-prueba", ExpMinutes: 60, Issuer: "taller-api"})
}

func TestRegisterYLogin(t *testing.T) {
	repo := newStubUsuarios()
	uc := testUC(repo)

	u, err := uc.Register(dto.RegisterRequest{
		Email:    "ana@taller.mx",
		Password: "contraseña-larga",
		Nombre:   "Ana",
		Rol:      entity.RolAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@taller.mx", u.Email)
	assert.Equal(t, entity.RolAdmin, u.Rol)
	assert.NotEmpty(t, repo.porEmail["ana@taller.mx"].PasswordHash)
	assert.NotEqual(t, "contraseña-larga", repo.porEmail["ana@taller.mx"].PasswordHash)

	resp, err := uc.Login(dto.LoginRequest{Email: "ana@taller.mx", Password: "contraseña-larga"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID, rol, err := jwt.Parse("secreto-de-prueba", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, entity.RolAdmin, rol)
}

func TestRegister_Defaults(t *testing.T) {
	uc := testUC(newStubUsuarios())

	u, err := uc.Register(dto.RegisterRequest{Email: "beto@taller.mx", Password: "otra-contraseña"})
	require.NoError(t, err)
	assert.Equal(t, entity.RolVendedor, u.Rol, "sin rol explícito queda vendedor")
	assert.Equal(t, "beto@taller.mx", u.Nombre, "sin nombre se usa el email")
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := testUC(newStubUsuarios())

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@taller.mx", Password: "contraseña-larga"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{Email: "ana@taller.mx", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrEmailExists)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc := testUC(newStubUsuarios())

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@taller.mx", Password: "contraseña-larga"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@taller.mx", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := testUC(newStubUsuarios())

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@taller.mx", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioDesactivado(t *testing.T) {
	repo := newStubUsuarios()
	uc := testUC(repo)

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@taller.mx", Password: "contraseña-larga"})
	require.NoError(t, err)
	repo.porEmail["ana@taller.mx"].Activo = false

	_, err = uc.Login(dto.LoginRequest{Email: "ana@taller.mx", Password: "contraseña-larga"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
