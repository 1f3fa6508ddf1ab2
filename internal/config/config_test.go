package config

import (
	"os"
	"testing"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal string
		expected   string
	}{
		{"uses env value", "TEST_VAR_1", "hello", "default", "hello"},
		{"uses default when empty", "TEST_VAR_2", "", "default", "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
			}

			result := getEnvOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestGetEnvAsIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal int
		expected   int
	}{
		{"parses integer", "TEST_INT_1", "42", 10, 42},
		{"uses default for empty", "TEST_INT_2", "", 10, 10},
		{"uses default for non-numeric", "TEST_INT_3", "abc", 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
			}

			result := getEnvAsIntOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, result)
			}
		})
	}
}

func TestClampQuestionCount(t *testing.T) {
	tests := []struct {
		name     string
		in       int
		expected int
	}{
		{"zero uses default", 0, DefaultQuestions},
		{"below minimum", 1, MinQuestions},
		{"above maximum", 50, MaxQuestions},
		{"in range unchanged", 7, 7},
		{"minimum kept", MinQuestions, MinQuestions},
		{"maximum kept", MaxQuestions, MaxQuestions},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClampQuestionCount(tc.in); got != tc.expected {
				t.Errorf("ClampQuestionCount(%d) = %d, want %d", tc.in, got, tc.expected)
			}
		})
	}
}

func TestLoadAllowsMissingGeminiKey(t *testing.T) {
	os.Unsetenv("GEMINI_API_KEY")

	cfg := Load()
	if cfg.GeminiAPIKey != "" {
		t.Errorf("Expected empty Gemini key, got %q", cfg.GeminiAPIKey)
	}
	if cfg.Port == "" {
		t.Error("Expected default port to be set")
	}
}
