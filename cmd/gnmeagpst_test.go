package cmd

import (
	"testing"

	nmea "github.com/adrianmo/go-nmea"
)

const rmcSentence = "$GPRMC,220516,A,5133.82,N,00042.24,W,173.8,231.8,130694,004.2,W*70"

func TestFixLine(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		leap   bool
		want   string
		wantOK bool
	}{
		{
			name:   "rmc leap adjusted",
			line:   rmcSentence + "\n",
			leap:   true,
			want:   "1994-06-13T22:05:16Z !0753:165925 week 753 weekseconds 165925",
			wantOK: true,
		},
		{
			name:   "rmc raw",
			line:   rmcSentence + "\n",
			leap:   false,
			want:   "1994-06-13T22:05:16Z !0753:165916 week 753 weekseconds 165916",
			wantOK: true,
		},
		{
			name: "not a sentence",
			line: "hello world\n",
		},
		{
			name: "empty",
			line: "\n",
		},
		{
			name: "bad checksum",
			line: "$GPRMC,220516,A,5133.82,N,00042.24,W,173.8,231.8,130694,004.2,W*71\n",
		},
		{
			name: "non rmc sentence",
			line: "$GPGLL,4916.45,N,12311.12,W,225444,A,*1D\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := fixLine(tt.line, tt.leap)
			if ok != tt.wantOK {
				t.Fatalf("fixLine(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("fixLine(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestFixTimeCentury(t *testing.T) {
	tests := []struct {
		name string
		yy   int
		want int
	}{
		{"gps era", 94, 1994},
		{"current era", 5, 2005},
		{"era boundary", 80, 1980},
		{"just before boundary", 79, 2079},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := nmea.Date{Valid: true, DD: 13, MM: 6, YY: tt.yy}
			tod := nmea.Time{Valid: true, Hour: 22, Minute: 5, Second: 16}
			ft := fixTime(d, tod)
			if ft.Year() != tt.want {
				t.Errorf("fixTime(YY=%d) year = %d, want %d", tt.yy, ft.Year(), tt.want)
			}
		})
	}
}
