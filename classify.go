package transcripts

// MediaKind is the rendering category of an attachment.
type MediaKind int

// Media kinds. MediaGeneric is the zero value.
const (
	MediaGeneric MediaKind = iota
	MediaImage
	MediaVideo
	MediaAudio
)

// String returns the kind name used in titles and logs.
func (k MediaKind) String() string {
	switch k {
	case MediaImage:
		return "Image"
	case MediaVideo:
		return "Video"
	case MediaAudio:
		return "Audio"
	default:
		return "Generic"
	}
}

// Extension tables, read only through Classify.
var (
	imageExtensions = extensionSet("png", "jpg", "jpeg", "gif")
	videoExtensions = extensionSet("mp4", "webm", "mkv", "avi", "mov", "flv", "wmv", "mpg", "mpeg")
	audioExtensions = extensionSet("mp3", "wav", "ogg", "flac")
)

func extensionSet(exts ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		set[e] = struct{}{}
	}
	return set
}

// Classify maps a file extension (without the dot) to its media kind.
// Matching is exact and case-sensitive: "PNG" is MediaGeneric.
func Classify(ext string) MediaKind {
	if _, ok := imageExtensions[ext]; ok {
		return MediaImage
	}
	if _, ok := videoExtensions[ext]; ok {
		return MediaVideo
	}
	if _, ok := audioExtensions[ext]; ok {
		return MediaAudio
	}
	return MediaGeneric
}
