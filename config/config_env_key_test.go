package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"jwt": map[string]any{
			"accessSecret": "",
			"refreshTtl":   "",
		},
		"policy": map[string]any{
			"sellerAutoApprove": false,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "JWT_ACCESSSECRET", want: "jwt.accessSecret"},
		{envKey: "JWT_REFRESHTTL", want: "jwt.refreshTtl"},
		{envKey: "POLICY_SELLERAUTOAPPROVE", want: "policy.sellerAutoApprove"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyJWTDefaults(t *testing.T) {
	cfg := &Config{}
	applyJWTDefaults(cfg)

	if cfg.JWT.AccessTTL != defaultAccessTTL {
		t.Fatalf("access TTL = %v, want %v", cfg.JWT.AccessTTL, defaultAccessTTL)
	}
	if cfg.JWT.RefreshTTL != defaultRefreshTTL {
		t.Fatalf("refresh TTL = %v, want %v", cfg.JWT.RefreshTTL, defaultRefreshTTL)
	}
	if cfg.JWT.Issuer != defaultIssuer {
		t.Fatalf("issuer = %q, want %q", cfg.JWT.Issuer, defaultIssuer)
	}
	if cfg.JWT.Audience != defaultAudience {
		t.Fatalf("audience = %q, want %q", cfg.JWT.Audience, defaultAudience)
	}
}
