package directory

import (
	"errors"
	"testing"
)

func TestNormalizeEmployee(t *testing.T) {
	tests := []struct {
		name      string
		in        Employee
		wantLevel string
		wantErr   error
	}{
		{
			name:      "department leader alias",
			in:        Employee{Name: "A", Level: "department-leader"},
			wantLevel: LevelLeader,
		},
		{
			name:      "uppercase level trimmed",
			in:        Employee{Name: "B", Level: "  Member "},
			wantLevel: LevelMember,
		},
		{
			name:    "unknown level rejected",
			in:      Employee{Name: "C", Level: "intern"},
			wantErr: ErrInvalidLevel,
		},
		{
			name:    "unknown status rejected",
			in:      Employee{Name: "D", Level: "hr", Status: "fired"},
			wantErr: ErrInvalidStatus,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			out, err := normalizeEmployee(tc.in)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Level != tc.wantLevel {
				t.Fatalf("expected level %q, got %q", tc.wantLevel, out.Level)
			}
		})
	}
}

func TestNormalizeEmployeeDefaultsStatus(t *testing.T) {
	out, err := normalizeEmployee(Employee{Name: "E", Level: "member"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != StatusActive {
		t.Fatalf("expected default status active, got %q", out.Status)
	}
}
