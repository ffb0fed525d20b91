package pkg

import (
	"os"
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "qedcfg" {
		t.Errorf("Expected Name to be %q, got %q", "qedcfg", Name)
	}
}

func TestVersion(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("Failed to read VERSION file: %v", err)
	}

	if content := strings.TrimSpace(string(buf)); Version() != content {
		t.Errorf("Expected Version to be %q, got %q", content, Version())
	}
}

func TestAuthor(t *testing.T) {
	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name == "ardnew" && a.Email == "andrew@ardnew.com"
	}) {
		t.Errorf("Expected Author to contain ardnew, got %v", Author)
	}

	for i, author := range Author {
		if author.Name == "" && author.Email == "" {
			t.Errorf("Author[%d] must define at least Name or Email", i)
		}
	}
}

func TestSearchPath(t *testing.T) {
	sep := string(os.PathListSeparator)

	t.Setenv(PathEnv(), strings.Join([]string{"/etc/qed", "", "/opt/qed"}, sep))

	got := SearchPath("/home/user/qed")

	for _, want := range []string{"/home/user/qed", "/etc/qed", "/opt/qed"} {
		if !slices.Contains(got, want) {
			t.Errorf("SearchPath() = %v, missing %q", got, want)
		}
	}

	if slices.Contains(got, "") {
		t.Errorf("SearchPath() = %v, contains empty element", got)
	}

	if got[0] != "/home/user/qed" {
		t.Errorf("SearchPath()[0] = %q, want explicit directory first", got[0])
	}
}

func TestPathEnv(t *testing.T) {
	if got := PathEnv(); got != "QEDCFG_PATH" {
		t.Errorf("PathEnv() = %q, want %q", got, "QEDCFG_PATH")
	}
}

type color int

func (c color) String() string { return [...]string{"red", "green"}[c] }

func TestParseEnum(t *testing.T) {
	all := []color{0, 1}

	if v, ok := ParseEnum(" Green ", all); !ok || v != 1 {
		t.Errorf("ParseEnum(Green) = %v, %v", v, ok)
	}

	if _, ok := ParseEnum("blue", all); ok {
		t.Error("ParseEnum(blue) succeeded")
	}

	if got := EnumNames(all); len(got) != 2 || got[0] != "red" {
		t.Errorf("EnumNames = %v", got)
	}
}
