package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid email", email: "student@example.com", wantErr: false},
		{name: "valid with plus", email: "student+tag@example.co.uk", wantErr: false},
		{name: "empty", email: "", wantErr: true},
		{name: "missing domain", email: "student@", wantErr: true},
		{name: "missing at", email: "student.example.com", wantErr: true},
		{name: "whitespace only", email: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "long enough", password: "correcthorse", wantErr: false},
		{name: "exactly 8", password: "12345678", wantErr: false},
		{name: "too short", password: "1234567", wantErr: true},
		{name: "empty", password: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("Jo"); err != nil {
		t.Errorf("ValidateName(\"Jo\") = %v, want nil", err)
	}
	if err := ValidateName("J"); err == nil {
		t.Error("ValidateName(\"J\") = nil, want error")
	}
	if err := ValidateName("  "); err == nil {
		t.Error("ValidateName(blank) = nil, want error")
	}
}
