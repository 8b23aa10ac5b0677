package timefmt

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"afternoon", "14:30", "2:30 PM"},
		{"just after midnight", "00:15", "12:15 AM"},
		{"noon", "12:00", "12:00 PM"},
		{"morning without padding", "9:05", "9:05 AM"},
		{"late evening", "23:59", "11:59 PM"},
		{"lowercase marker", "9:00am", "9:00AM"},
		{"mixed case marker with space", "7:30 Pm", "7:30 PM"},
		{"empty", "", ""},
		{"garbage", "garbage", "garbage"},
		{"non numeric hour", "ab:30", "ab:30"},
		{"negative hour", "-1:30", "-1:30"},
		{"seconds dropped", "18:45:00", "6:45 PM"},
		{"missing minutes", "19", "7:00 PM"},
		{"minute passed verbatim", "10:7", "10:7 AM"},
		{"out of range hour is not validated", "25:00", "1:00 PM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.input); got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormat_Idempotent(t *testing.T) {
	inputs := []string{"14:30", "00:15", "9:00am", "", "garbage", "12:00"}

	for _, in := range inputs {
		once := Format(in)
		if twice := Format(once); twice != once {
			t.Errorf("Format not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
