package validation

import (
	"testing"

	"github.com/kbukum/sypnna/errors"
)

type sample struct {
	SourceURL string `json:"url" validate:"required,http_url"`
	Provider  string `json:"provider,omitempty" validate:"omitempty,oneof=supadata assemblyai"`
	ShortName string `validate:"max=3"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		in        sample
		wantErr   bool
		wantField string
		wantMsg   string
	}{
		{name: "valid https", in: sample{SourceURL: "https://youtu.be/abc"}},
		{name: "valid http", in: sample{SourceURL: "http://example.com/a.mp3"}},
		{name: "missing", in: sample{}, wantErr: true, wantField: "url", wantMsg: "url is required"},
		{name: "not a url", in: sample{SourceURL: "hello"}, wantErr: true, wantField: "url", wantMsg: "url must be a valid http(s) URL"},
		{name: "wrong scheme", in: sample{SourceURL: "ftp://example.com/a.mp3"}, wantErr: true, wantField: "url", wantMsg: "url must be a valid http(s) URL"},
		{name: "oneof", in: sample{SourceURL: "https://a.b", Provider: "x"}, wantErr: true, wantField: "provider", wantMsg: "provider must be one of: supadata assemblyai"},
		{name: "snake case fallback", in: sample{SourceURL: "https://a.b", ShortName: "long"}, wantErr: true, wantField: "short_name", wantMsg: "short_name must be at most 3 characters"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.in)
			if !tc.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			ae, ok := errors.AsAppError(err)
			if !ok || ae.Code != errors.ErrCodeInvalidInput {
				t.Fatalf("expected INVALID_INPUT, got %v", err)
			}
			if ae.HTTPStatus != 400 {
				t.Errorf("expected 400, got %d", ae.HTTPStatus)
			}
			if ae.Details["field"] != tc.wantField {
				t.Errorf("expected field %q, got %v", tc.wantField, ae.Details["field"])
			}
			if ae.PublicMessage() != tc.wantMsg {
				t.Errorf("expected %q, got %q", tc.wantMsg, ae.PublicMessage())
			}
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"SourceURL": "source_u_r_l",
		"Name":      "name",
		"jobID":     "job_i_d",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
