package site

import (
	"path/filepath"
	"testing"
)

func TestValidID(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		valid bool
	}{
		{"simple word", "alpha", true},
		{"with digits", "site42", true},
		{"with underscore", "my_site", true},
		{"single letter", "a", true},
		{"max length 24", "a23456789012345678901234", true},
		{"too long", "a234567890123456789012345", false},
		{"empty", "", false},
		{"starts with digit", "9lives", false},
		{"starts with underscore", "_hidden", false},
		{"with dash", "my-site", false},
		{"with space", "my site", false},
		{"with dot", "my.site", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if ValidID(tt.id) != tt.valid {
				t.Errorf("ValidID(%q) = %v, want %v", tt.id, !tt.valid, tt.valid)
			}
		})
	}
}

func TestDirNameRoundTrip(t *testing.T) {
	name := DirName("alpha", 10000)
	if name != "site-alpha-10000" {
		t.Errorf("DirName = %q, want site-alpha-10000", name)
	}

	id, port, ok := ParseDirName(name)
	if !ok {
		t.Fatal("ParseDirName rejected its own encoding")
	}
	if id != "alpha" || port != 10000 {
		t.Errorf("ParseDirName = (%q, %d), want (alpha, 10000)", id, port)
	}
}

func TestParseDirName(t *testing.T) {
	tests := []struct {
		name string
		dir  string
		ok   bool
	}{
		{"valid", "site-alpha-10000", true},
		{"valid 4 digit port", "site-beta-9999", true},
		{"underscore id", "site-my_app-10003", true},
		{"no prefix", "alpha-10000", false},
		{"missing port", "site-alpha", false},
		{"port too short", "site-alpha-999", false},
		{"port too long", "site-alpha-100000", false},
		{"id starts with digit", "site-9lives-10000", false},
		{"template dir", "template", false},
		{"bin dir", "bin", false},
		{"trailing junk", "site-alpha-10000x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, ok := ParseDirName(tt.dir)
			if ok != tt.ok {
				t.Errorf("ParseDirName(%q) ok = %v, want %v", tt.dir, ok, tt.ok)
			}
		})
	}
}

func TestNew(t *testing.T) {
	s, err := New("/home/dev/www", "alpha", 10000)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if s.Dir != "/home/dev/www/site-alpha-10000" {
		t.Errorf("Dir = %q", s.Dir)
	}

	if _, err := New("/home/dev/www", "9bad", 10000); err == nil {
		t.Error("expected error for invalid identifier")
	}
}

func TestSitePorts(t *testing.T) {
	s := Site{ID: "alpha", Port: 10000}

	if s.HTTPPort() != 10000 {
		t.Errorf("HTTPPort = %d, want 10000", s.HTTPPort())
	}
	if s.HTTPSPort() != 10001 {
		t.Errorf("HTTPSPort = %d, want 10001", s.HTTPSPort())
	}
	if s.DBPort() != 10002 {
		t.Errorf("DBPort = %d, want 10002", s.DBPort())
	}
}

func TestSitePaths(t *testing.T) {
	s := Site{ID: "alpha", Port: 10000, Dir: "/base/site-alpha-10000"}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"www dir", s.WWWDir(), "/base/site-alpha-10000/www"},
		{"doc dir", s.DocDir(), "/base/site-alpha-10000/www/doc"},
		{"db dir", s.DBDir(), "/base/site-alpha-10000/db"},
		{"data dir", s.DataDir(), "/base/site-alpha-10000/db/data"},
		{"www pid", s.PIDFile(WWW), "/base/site-alpha-10000/www/run/www.pid"},
		{"db pid", s.PIDFile(DB), "/base/site-alpha-10000/db/run/db.pid"},
		{"www error log", s.ErrorLog(WWW), "/base/site-alpha-10000/www/log/error.log"},
		{"db error log", s.ErrorLog(DB), "/base/site-alpha-10000/db/log/error.log"},
		{"start script", s.ScriptPath(WWW, "start"), "/base/site-alpha-10000/www.start"},
		{"stop script", s.ScriptPath(DB, "stop"), "/base/site-alpha-10000/db.stop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != filepath.FromSlash(tt.want) {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestParseService(t *testing.T) {
	if _, err := ParseService("www"); err != nil {
		t.Errorf("www should parse: %v", err)
	}
	if _, err := ParseService("db"); err != nil {
		t.Errorf("db should parse: %v", err)
	}
	if _, err := ParseService("ftp"); err == nil {
		t.Error("ftp should not parse")
	}
}
