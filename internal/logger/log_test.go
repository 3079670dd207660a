// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("new should successfully create a logger", func(t *testing.T) {
		if l := New(slog.LevelInfo); l == nil {
			t.Fatal("expected logger to be non-nil")
		}
	})
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name   string
		level  slog.Level
		expect []string
		reject []string
	}{
		{"DEBUG", slog.LevelDebug, []string{"msg=debug", "msg=info", "msg=warn", "msg=error"}, nil},
		{"INFO", slog.LevelInfo, []string{"msg=info", "msg=warn", "msg=error"}, []string{"msg=debug"}},
		{"WARN", slog.LevelWarn, []string{"msg=warn", "msg=error"}, []string{"msg=debug", "msg=info"}},
		{"ERROR", slog.LevelError, []string{"msg=error"}, []string{"msg=debug", "msg=info", "msg=warn"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := bytes.NewBuffer(nil)
			l := NewLogger(tc.level, buf)
			l.Debug("debug")
			l.Info("info")
			l.Warn("warn")
			l.Error("error")

			for _, want := range tc.expect {
				if !bytes.Contains(buf.Bytes(), []byte(want)) {
					t.Errorf("expected %q to be logged, got: %q", want, buf.String())
				}
			}
			for _, unwanted := range tc.reject {
				if bytes.Contains(buf.Bytes(), []byte(unwanted)) {
					t.Errorf("did not expect %q to be logged, got: %q", unwanted, buf.String())
				}
			}
		})
	}
}

func TestErr(t *testing.T) {
	t.Run("error attributes should be logged", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		l := NewLogger(slog.LevelDebug, buf)
		want := "intentionally failing"
		l.Error("this is a test", Err(errors.New(want)))

		if !bytes.Contains(buf.Bytes(), []byte(`error="`+want+`"`)) {
			t.Errorf("expected error message to contain %q, got: %q", want, buf.String())
		}
	})
}
