package engine

import (
	"context"
	"errors"
	"testing"
)

func TestResolveDirectVideos(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "watch URL",
			raw:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "watch URL with extra params",
			raw:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s&list=PLx",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "short domain",
			raw:  "https://youtu.be/dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "embed URL",
			raw:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "no scheme",
			raw:  "youtube.com/watch?v=AAAAAAAAAAA",
			want: "AAAAAAAAAAA",
		},
		{
			name: "bare id",
			raw:  "dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "surrounding whitespace",
			raw:  "  https://youtu.be/dQw4w9WgXcQ  ",
			want: "dQw4w9WgXcQ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := Resolve(tt.raw)
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", tt.raw, err)
			}
			if ref.IsChannel() {
				t.Fatalf("Resolve(%q) classified as channel", tt.raw)
			}
			if ref.ID != tt.want {
				t.Errorf("Resolve(%q).ID = %q, want %q", tt.raw, ref.ID, tt.want)
			}
		})
	}
}

func TestResolveChannels(t *testing.T) {
	urls := []string{
		"https://www.youtube.com/channel/UCuAXFkgsw1L7xaCfnd5JJOw",
		"https://www.youtube.com/@somecreator",
		"https://www.youtube.com/c/SomeCreator",
		"https://www.youtube.com/user/somecreator",
	}
	for _, u := range urls {
		t.Run(u, func(t *testing.T) {
			ref, err := Resolve(u)
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", u, err)
			}
			if !ref.IsChannel() {
				t.Errorf("Resolve(%q) not classified as channel", u)
			}
		})
	}
}

func TestResolveNoID(t *testing.T) {
	inputs := []string{
		"",
		"not a url",
		"https://www.youtube.com/watch?v=short",
	}
	for _, in := range inputs {
		t.Run("input "+in, func(t *testing.T) {
			_, err := Resolve(in)
			if err == nil {
				t.Fatalf("Resolve(%q) expected error", in)
			}
			var rerr *ResolutionError
			if !errors.As(err, &rerr) {
				t.Fatalf("Resolve(%q) error type = %T", in, err)
			}
			if rerr.Reason != "no-id" {
				t.Errorf("reason = %q, want %q", rerr.Reason, "no-id")
			}
		})
	}
}

func TestIsSupportedURL(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"HTTPS://WWW.YOUTUBE.COM/watch?v=dQw4w9WgXcQ", true},
		{"youtu.be/dQw4w9WgXcQ", true},
		{"dQw4w9WgXcQ", true},
		{"https://vimeo.com/12345", false},
		{"not a url", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := IsSupportedURL(tt.raw); got != tt.want {
				t.Errorf("IsSupportedURL(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestBuildWorklistDropsInvalid(t *testing.T) {
	Init(Config{})

	raws := []string{
		"https://www.youtube.com/watch?v=AAAAAAAAAAA",
		"not a url",
		"https://youtu.be/BBBBBBBBBBB",
		"https://vimeo.com/999",
	}
	items := BuildWorklist(context.Background(), raws)

	if len(items) != 2 {
		t.Fatalf("worklist length = %d, want 2", len(items))
	}
	if items[0].VideoID != "AAAAAAAAAAA" || items[1].VideoID != "BBBBBBBBBBB" {
		t.Errorf("worklist ids = %q, %q", items[0].VideoID, items[1].VideoID)
	}
	for i, item := range items {
		if item.Ordinal != i {
			t.Errorf("item %d ordinal = %d", i, item.Ordinal)
		}
	}
}

func TestBuildWorklistPreservesDuplicates(t *testing.T) {
	Init(Config{})

	raws := []string{
		"https://youtu.be/AAAAAAAAAAA",
		"https://youtu.be/AAAAAAAAAAA",
	}
	items := BuildWorklist(context.Background(), raws)
	if len(items) != 2 {
		t.Fatalf("worklist length = %d, want 2", len(items))
	}
}

func TestWatchURL(t *testing.T) {
	got := WatchURL("dQw4w9WgXcQ")
	want := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	if got != want {
		t.Errorf("WatchURL = %q, want %q", got, want)
	}
}
