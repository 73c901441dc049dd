package models

import (
	"testing"
	"time"
)

func TestBrandValidate(t *testing.T) {
	valid := &Brand{
		LibraryURL: "https://www.facebook.com/ads/library/?view_all_page_id=123",
		Name:       "Acme Fitness",
		Active:     true,
		BusinessID: 1,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid brand, got error: %v", err)
	}

	invalid := &Brand{}
	if err := invalid.Validate(); err == nil {
		t.Fatalf("expected error for invalid brand")
	}
}

func TestClampBrandName(t *testing.T) {
	short := "Acme"
	if got := ClampBrandName(short); got != short {
		t.Fatalf("expected %q untouched, got %q", short, got)
	}

	long := ""
	for i := 0; i < 200; i++ {
		long += "x"
	}
	if got := ClampBrandName(long); len(got) != MaxBrandNameLen {
		t.Fatalf("expected %d chars, got %d", MaxBrandNameLen, len(got))
	}
}

func TestAdCreativeValidate(t *testing.T) {
	valid := &AdCreative{
		BrandID:   1,
		ArchiveID: "a1",
		Source:    SourceScrapeCreators,
		StartDate: time.Now(),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid creative, got error: %v", err)
	}

	if err := (&AdCreative{}).Validate(); err == nil {
		t.Fatalf("expected error for empty creative")
	}
}

func TestAdCreativeMonthStart(t *testing.T) {
	a := &AdCreative{StartDate: time.Date(2026, 3, 17, 22, 14, 0, 0, time.UTC)}
	want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := a.MonthStart(); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAdCreativeActiveDays(t *testing.T) {
	now := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	running := &AdCreative{StartDate: start}
	if got := running.ActiveDays(now); got != 10 {
		t.Fatalf("expected 10 active days for running ad, got %d", got)
	}

	end := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	finished := &AdCreative{StartDate: start, EndDate: &end}
	if got := finished.ActiveDays(now); got != 5 {
		t.Fatalf("expected 5 active days for finished ad, got %d", got)
	}

	future := &AdCreative{StartDate: now.Add(48 * time.Hour)}
	if got := future.ActiveDays(now); got != 0 {
		t.Fatalf("expected 0 active days for future ad, got %d", got)
	}
}

func TestAdCreativeHasLink(t *testing.T) {
	a := &AdCreative{}
	if a.HasLink() {
		t.Fatalf("expected no link")
	}
	empty := ""
	a.LinkURL = &empty
	if a.HasLink() {
		t.Fatalf("expected empty link to count as missing")
	}
	u := "https://example.com/product-1"
	a.LinkURL = &u
	if !a.HasLink() {
		t.Fatalf("expected link")
	}
}
