package state

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"

	"dtex/config"
)

func TestContextWithEnv(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	if env.start.IsZero() {
		t.Error("start time not set")
	}
	if env.RunID == uuid.Nil {
		t.Error("run id not set")
	}
	if other := EnvFromContext(ContextWithEnv(context.Background())); other.RunID == env.RunID {
		t.Error("run ids must differ between invocations")
	}

	time.Sleep(5 * time.Millisecond)
	if env.Uptime() < 5*time.Millisecond {
		t.Errorf("Uptime() = %v", env.Uptime())
	}
}

func TestEnvFromContext_Missing(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic when env is not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_StrictTranslation(t *testing.T) {
	tests := []struct {
		name string
		env  *LocalEnv
		want bool
	}{
		{"no config", &LocalEnv{}, false},
		{"flag", &LocalEnv{Strict: true}, true},
		{"config", &LocalEnv{Cfg: &config.Config{Translator: config.TranslatorConfig{Strict: true}}}, true},
		{"neither", &LocalEnv{Cfg: &config.Config{}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.env.StrictTranslation(); got != tt.want {
				t.Errorf("StrictTranslation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLocalEnv_Workers(t *testing.T) {
	tests := []struct {
		name string
		env  *LocalEnv
		want int
	}{
		{"no config", &LocalEnv{}, runtime.NumCPU()},
		{"zero", &LocalEnv{Cfg: &config.Config{}}, runtime.NumCPU()},
		{"configured", &LocalEnv{Cfg: &config.Config{Project: config.ProjectConfig{Workers: 3}}}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.env.Workers(); got != tt.want {
				t.Errorf("Workers() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLocalEnv_StdLog(t *testing.T) {
	env := &LocalEnv{}
	env.RedirectStdLog()
	if env.restoreStdLog != nil {
		t.Error("redirect without logger must do nothing")
	}
	env.RestoreStdLog()

	env.Log = zaptest.NewLogger(t)
	for i := range 3 {
		env.RedirectStdLog()
		if env.restoreStdLog == nil {
			t.Fatalf("cycle %d: redirect not installed", i)
		}
		env.RestoreStdLog()
		if env.restoreStdLog != nil {
			t.Fatalf("cycle %d: restore not cleared", i)
		}
	}
}
