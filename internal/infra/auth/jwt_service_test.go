package auth

import (
	"testing"
	"time"

	"pressmart/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "access-secret-for-tests"
	cfg.JWT.RefreshSecret = "refresh-secret-for-tests"
	cfg.JWT.AccessTTL = time.Hour
	cfg.JWT.RefreshTTL = 7 * 24 * time.Hour
	cfg.JWT.Issuer = "pressmart-app"
	cfg.JWT.Audience = "pressmart-users"

	return cfg
}

func TestNewJWTService_RequiresSecrets(t *testing.T) {
	cfg := newTestJWTConfig()
	cfg.JWT.AccessSecret = ""

	_, err := NewJWTService(cfg)

	assert.Error(t, err)
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	userID := uuid.New()
	pair, err := svc.IssueTokenPair(userID)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	gotAccess, err := svc.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, gotAccess)

	gotRefresh, err := svc.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID, gotRefresh)
}

func TestJWTService_RejectsWrongTokenType(t *testing.T) {
	cfg := newTestJWTConfig()
	// With identical secrets the type claim is the only thing separating the
	// two token kinds.
	cfg.JWT.RefreshSecret = cfg.JWT.AccessSecret
	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	pair, err := svc.IssueTokenPair(uuid.New())
	require.NoError(t, err)

	_, err = svc.VerifyAccess(pair.RefreshToken)
	assert.Error(t, err)

	_, err = svc.VerifyRefresh(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	otherCfg := newTestJWTConfig()
	otherCfg.JWT.AccessSecret = "a-completely-different-secret"
	otherSvc, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	pair, err := otherSvc.IssueTokenPair(uuid.New())
	require.NoError(t, err)

	_, err = svc.VerifyAccess(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	cfg := newTestJWTConfig()
	cfg.JWT.AccessTTL = -time.Minute
	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	pair, err := svc.IssueTokenPair(uuid.New())
	require.NoError(t, err)

	_, err = svc.VerifyAccess(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_RejectsIssuerMismatch(t *testing.T) {
	otherCfg := newTestJWTConfig()
	otherCfg.JWT.Issuer = "some-other-app"
	otherSvc, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	pair, err := otherSvc.IssueTokenPair(uuid.New())
	require.NoError(t, err)

	svc, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	_, err = svc.VerifyAccess(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_RejectsAudienceMismatch(t *testing.T) {
	otherCfg := newTestJWTConfig()
	otherCfg.JWT.Audience = "some-other-audience"
	otherSvc, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	pair, err := otherSvc.IssueTokenPair(uuid.New())
	require.NoError(t, err)

	svc, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	_, err = svc.VerifyAccess(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig())
	require.NoError(t, err)

	_, err = svc.VerifyAccess("not-a-jwt")
	assert.Error(t, err)
}

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "missing scheme", header: "abc.def.ghi", wantErr: true},
		{name: "wrong scheme", header: "Basic abc", wantErr: true},
		{name: "lowercase scheme", header: "bearer abc", wantErr: true},
		{name: "empty token", header: "Bearer ", wantErr: true},
		{name: "extra parts", header: "Bearer abc def", wantErr: true},
		{name: "empty header", header: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearer(tt.header)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
