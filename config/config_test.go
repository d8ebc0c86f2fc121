package config

import "testing"

func TestEnvInt(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  int
	}{
		{"unset", "", 20},
		{"valid", "50", 50},
		{"garbage", "lots", 20},
		{"negative", "-3", 20},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Setenv("POD_LIST_LIMIT", c.value)
			if got := envInt("POD_LIST_LIMIT", 20); got != c.want {
				t.Fatalf("envInt = %d; want %d", got, c.want)
			}
		})
	}
}

func TestLoadMediaDirOverride(t *testing.T) {
	t.Setenv("POD_MEDIA_DIR", "/tmp/poddash-test")
	cfg := Load()
	if cfg.MediaDir != "/tmp/poddash-test" {
		t.Fatalf("MediaDir = %q", cfg.MediaDir)
	}
}
