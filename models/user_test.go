package models_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stocknest/models"
)

func TestNewUserNormalizes(t *testing.T) {
	t.Parallel()

	user, err := models.NewUser("  Nguyen Van A  ", " usera ", " UserA@Gmail.COM ", "Password1!")
	require.NoError(t, err)
	require.Equal(t, "Nguyen Van A", user.Name)
	require.Equal(t, "usera", user.Username)
	require.Equal(t, "usera@gmail.com", user.Email)
	require.NotEqual(t, "Password1!", user.PasswordHash)
}

func TestNewUserValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		args     [4]string
		expected error
	}{
		{"short name", [4]string{"Ab", "usera", "a@b.com", "Password1!"}, models.ErrNameTooShort},
		{"short username", [4]string{"Alice", "ab", "a@b.com", "Password1!"}, models.ErrBadUsername},
		{"long username", [4]string{"Alice", "abcdefghijklmnopqrstuvwxyzabcde", "a@b.com", "Password1!"}, models.ErrBadUsername},
		{"bad email", [4]string{"Alice", "alice", "not-an-email", "Password1!"}, models.ErrBadEmail},
		{"short password", [4]string{"Alice", "alice", "a@b.com", "Pa1!"}, models.ErrWeakPassword},
		{"no uppercase", [4]string{"Alice", "alice", "a@b.com", "password1!"}, models.ErrWeakPassword},
		{"no digit", [4]string{"Alice", "alice", "a@b.com", "Password!"}, models.ErrWeakPassword},
		{"no special", [4]string{"Alice", "alice", "a@b.com", "Password1"}, models.ErrWeakPassword},
		{"forbidden character", [4]string{"Alice", "alice", "a@b.com", "Password1! "}, models.ErrWeakPassword},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := models.NewUser(tc.args[0], tc.args[1], tc.args[2], tc.args[3])
			require.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestCheckPassword(t *testing.T) {
	t.Parallel()

	user, err := models.NewUser("Alice", "alice", "a@b.com", "Password1!")
	require.NoError(t, err)
	require.True(t, user.CheckPassword("Password1!"))
	require.False(t, user.CheckPassword("Password2!"))
	require.False(t, user.CheckPassword(""))
}
