package service

import (
	"testing"

	"student_intake/internal/repository"
	"student_intake/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRegistryService() *RegistryService {
	return NewRegistryService(utils.NewPhoneValidator("BR", false), repository.NewRegistry(), zap.NewNop())
}

func TestRegistryService_RegisterThenLogin(t *testing.T) {
	svc := newTestRegistryService()

	student, created, err := svc.Login("Ana Clara", "11987654321")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "+5511987654321", student.ID)
	assert.Equal(t, "+5511987654321", student.Phone)
	assert.Equal(t, "Ana Clara", student.Name)

	student, created, err = svc.Login("  ana clara ", "(11) 98765-4321")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Ana Clara", student.Name)
}

func TestRegistryService_NameMismatch(t *testing.T) {
	svc := newTestRegistryService()
	_, _, err := svc.Login("Ana Clara", "11987654321")
	require.NoError(t, err)

	_, created, err := svc.Login("Bruno", "11987654321")
	assert.ErrorIs(t, err, ErrNameMismatch)
	assert.False(t, created)
}

func TestRegistryService_Validation(t *testing.T) {
	svc := newTestRegistryService()

	_, _, err := svc.Login("Al", "11987654321")
	assert.ErrorIs(t, err, ErrNameTooShort)

	_, _, err = svc.Login("Ana", "abc")
	assert.ErrorIs(t, err, utils.ErrPhoneFormat)

	_, _, err = svc.Login("Ana", "12345")
	assert.True(t, utils.IsPhoneError(err))
}

func TestRegistryService_AcceptsLandline(t *testing.T) {
	svc := newTestRegistryService()

	student, created, err := svc.Login("Escola", "(11) 3333-4444")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "+551133334444", student.Phone)
}
