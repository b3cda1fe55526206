package utils

const DefaultOutputDir = "mp3"
const DefaultTool = "yt-dlp"

// Leftovers yt-dlp writes next to the final file while a download or
// conversion is in flight.
var partialPatterns = []string{
	"*.part",
	"*.part-Frag*",
	"*.ytdl",
	"*.temp.*",
}
