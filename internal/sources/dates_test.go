package sources

import (
	"testing"
	"time"
)

func TestParseDateIndonesianWordForms(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{
			name: "day name with time and zone",
			in:   "Senin, 12 Mei 2025 14:30 WIB",
			want: time.Date(2025, time.May, 12, 14, 30, 0, 0, time.FixedZone("WIB", 7*3600)),
		},
		{
			name: "date only",
			in:   "12 Mei 2025",
			want: time.Date(2025, time.May, 12, 0, 0, 0, 0, time.FixedZone("WIB", 7*3600)),
		},
		{
			name: "abbreviated month",
			in:   "3 Agu 2025 09:15",
			want: time.Date(2025, time.August, 3, 9, 15, 0, 0, time.FixedZone("WIB", 7*3600)),
		},
		{
			name: "wita zone",
			in:   "Jumat, 1 Desember 2023 20:05 WITA",
			want: time.Date(2023, time.December, 1, 20, 5, 0, 0, time.FixedZone("WITA", 8*3600)),
		},
		{
			name: "dotted time separator",
			in:   "Kamis, 7 Maret 2024 08.45 WIB",
			want: time.Date(2024, time.March, 7, 8, 45, 0, 0, time.FixedZone("WIB", 7*3600)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if err != nil {
				t.Fatalf("ParseDate(%q): %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDateMachineForms(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-05-12T14:30:00+07:00", time.Date(2025, time.May, 12, 14, 30, 0, 0, time.FixedZone("", 7*3600))},
		{"2025-05-12", time.Date(2025, time.May, 12, 0, 0, 0, 0, time.FixedZone("WIB", 7*3600))},
		{"12/05/2025 08:15", time.Date(2025, time.May, 12, 8, 15, 0, 0, time.FixedZone("WIB", 7*3600))},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", tt.in, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDateZonelessMachineFormsAreWIB(t *testing.T) {
	for _, in := range []string{"2025-05-12T23:30:00", "2025-05-12 23:30:00", "2025-05-12"} {
		got, err := ParseDate(in)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", in, err)
		}
		if _, offset := got.Zone(); offset != 7*3600 {
			t.Errorf("ParseDate(%q) zone offset = %ds, want +7h (WIB)", in, offset)
		}
	}

	// A zoneless machine timestamp and the same wall clock written as an
	// Indonesian word date must be the same instant.
	iso, err := ParseDate("2025-05-12T23:30:00")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	word, err := ParseDate("12 Mei 2025 23:30")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if !iso.Equal(word) {
		t.Errorf("ISO %v and word form %v differ", iso, word)
	}

	// Explicit offsets are kept as written.
	zoned, err := ParseDate("2025-05-12T23:30:00+08:00")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if _, offset := zoned.Zone(); offset != 8*3600 {
		t.Errorf("zoned input offset = %ds, want +8h", offset)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "bukan tanggal", "99 Mei 2025", "12 Undecimber 2025", "45/45/2025"} {
		if _, err := ParseDate(in); err == nil {
			t.Errorf("ParseDate(%q) succeeded, want error", in)
		}
	}
}
