package config

import (
	"testing"
	"time"

	"csvsplit/internal/platform/testkit"
)

func TestPrefixNests(t *testing.T) {
	t.Setenv("CORE_SPLIT_STAGER", " disk ")
	c := New().Prefix("CORE_").Prefix("SPLIT_")
	if got := c.MayString("STAGER", "memory"); got != "disk" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayString("MISSING", "memory"); got != "memory" {
		t.Fatalf("default = %q", got)
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("MS_")
	t.Setenv("MS_DBURL", "postgres://x")
	if got := c.MustString("DBURL"); got != "postgres://x" {
		t.Fatalf("MustString = %q", got)
	}
	t.Setenv("MS_BLANK", "   ")
	testkit.MustPanic(t, func() { _ = c.MustString("BLANK") })
	testkit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMayParsed(t *testing.T) {
	c := New().Prefix("MP_")
	t.Setenv("MP_CHUNK", " 500 ")
	t.Setenv("MP_ARCHIVE", "true")
	t.Setenv("MP_GRACE", "250ms")
	t.Setenv("MP_BAD", "many")

	if c.MayInt("CHUNK", 200) != 500 || c.MayInt("BAD", 200) != 200 || c.MayInt("NONE", 200) != 200 {
		t.Fatalf("MayInt")
	}
	if !c.MayBool("ARCHIVE", false) || c.MayBool("BAD", false) || !c.MayBool("NONE", true) {
		t.Fatalf("MayBool")
	}
	if c.MayDuration("GRACE", time.Second) != 250*time.Millisecond || c.MayDuration("BAD", time.Second) != time.Second {
		t.Fatalf("MayDuration")
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CSV_")
	t.Setenv("CSV_ORIGINS", " https://a.test, ,https://b.test ,, ")
	got := c.MayCSV("ORIGINS", nil)
	if len(got) != 2 || got[0] != "https://a.test" || got[1] != "https://b.test" {
		t.Fatalf("MayCSV = %#v", got)
	}

	t.Setenv("CSV_BLANK", " , ,")
	if got := c.MayCSV("BLANK", []string{"*"}); len(got) != 1 || got[0] != "*" {
		t.Fatalf("blank list = %#v", got)
	}
	if got := c.MayCSV("NONE", nil); got != nil {
		t.Fatalf("unset = %#v", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("EN_")
	if got := c.MayEnum("COUNT", "legacy", "legacy", "ceil"); got != "legacy" {
		t.Fatalf("default = %q", got)
	}
	t.Setenv("EN_COUNT", "Ceil")
	if got := c.MayEnum("COUNT", "legacy", "legacy", "ceil"); got != "Ceil" {
		t.Fatalf("allowed = %q", got)
	}
	t.Setenv("EN_BAD", "round")
	testkit.MustPanic(t, func() { _ = c.MayEnum("BAD", "legacy", "legacy", "ceil") })
}
