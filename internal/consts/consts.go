// Package consts defines application-wide constants.
package consts

import "time"

const (
	// DefaultJobTimeout is the wall-clock ceiling for one search-and-download job.
	DefaultJobTimeout = 60 * time.Second
	// DefaultSocketTimeout is the network timeout passed to the extraction tool.
	DefaultSocketTimeout = 20 * time.Second
	// DefaultChunkSize is the chunked-transfer size for downloads.
	DefaultChunkSize = "10M"
	// DefaultRetries is the connection retry count for the extraction tool.
	DefaultRetries = 2
	// DefaultFragmentRetries is the fragment retry count for the extraction tool.
	DefaultFragmentRetries = 2
	// DefaultDownloadWorkers is the default size of the download worker pool.
	DefaultDownloadWorkers = 2
	// ProgressBarWidth is the cell count of user-facing progress bars.
	ProgressBarWidth = 10
)

// Extraction format selection chains, ordered fallback expressions for the
// extraction tool. Low and medium cap the audio bitrate; high takes the best.
const (
	FormatChainBase   = "bestaudio[ext=m4a]/bestaudio[ext=webm]/bestaudio"
	FormatChainLow    = "bestaudio[abr<=128]/bestaudio"
	FormatChainMedium = "bestaudio[abr<=192]/bestaudio"
	FormatChainHigh   = "bestaudio/best"
)

// Backend identifiers.
const (
	// BackendYTdlp is the yt-dlp extraction backend identifier.
	BackendYTdlp = "ytdlp"
	// BackendMock is the mock extraction backend identifier for testing.
	BackendMock = "mock"
)
