package transcripts

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext  string
		want MediaKind
	}{
		{"png", MediaImage},
		{"jpg", MediaImage},
		{"jpeg", MediaImage},
		{"gif", MediaImage},
		{"mp4", MediaVideo},
		{"webm", MediaVideo},
		{"mkv", MediaVideo},
		{"avi", MediaVideo},
		{"mov", MediaVideo},
		{"flv", MediaVideo},
		{"wmv", MediaVideo},
		{"mpg", MediaVideo},
		{"mpeg", MediaVideo},
		{"mp3", MediaAudio},
		{"wav", MediaAudio},
		{"ogg", MediaAudio},
		{"flac", MediaAudio},
		{"", MediaGeneric},
		{"txt", MediaGeneric},
		{"webp", MediaGeneric},
		{"PNG", MediaGeneric},
		{"Mp4", MediaGeneric},
		{".png", MediaGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			t.Parallel()

			if got := Classify(tt.ext); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.ext, got, tt.want)
			}
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	t.Parallel()

	for _, ext := range []string{"png", "mp3", "zip", "PNG"} {
		first := Classify(ext)
		for i := 0; i < 10; i++ {
			if got := Classify(ext); got != first {
				t.Fatalf("Classify(%q) changed from %v to %v", ext, first, got)
			}
		}
	}
}

func TestMediaKind_String(t *testing.T) {
	t.Parallel()

	tests := map[MediaKind]string{
		MediaImage:    "Image",
		MediaVideo:    "Video",
		MediaAudio:    "Audio",
		MediaGeneric:  "Generic",
		MediaKind(99): "Generic",
	}
	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("MediaKind(%d).String() = %q, want %q", int(kind), got, want)
		}
	}
}

func TestAttachment_FileExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    Attachment
		want string
	}{
		{name: "explicit extension wins", a: Attachment{Filename: "a.txt", Extension: "png"}, want: "png"},
		{name: "derived from filename", a: Attachment{Filename: "cat.png"}, want: "png"},
		{name: "case preserved", a: Attachment{Filename: "CAT.PNG"}, want: "PNG"},
		{name: "last extension only", a: Attachment{Filename: "logs.tar.gz"}, want: "gz"},
		{name: "no extension", a: Attachment{Filename: "README"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.a.FileExtension(); got != tt.want {
				t.Errorf("FileExtension() = %q, want %q", got, tt.want)
			}
		})
	}
}
