package api

// CollectionDetails lists the content of a collection.
type CollectionDetails struct {
	Collection       string   `json:"collection"`
	ParentCollection string   `json:"parent_collection"`
	ChildCollections []string `json:"child_collections"`
	Videos           []string `json:"videos"`
	Errors           []string `json:"errors"`
}

// VideoMetadata is read from the media file.
type VideoMetadata struct {
	Duration    float64 `json:"duration"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AudioTracks int     `json:"audioTracks"`
}

// SeriesDetails is parsed from episode file names.
type SeriesDetails struct {
	SeriesTitle  string `json:"seriesTitle"`
	Season       string `json:"season"`
	Episode      string `json:"episode"`
	EpisodeTitle string `json:"episodeTitle"`
}

// VideoDetails describes a single video.
type VideoDetails struct {
	Video       string        `json:"video"`
	Collection  string        `json:"collection"`
	Description string        `json:"description"`
	Series      SeriesDetails `json:"series"`
	Thumbnail   string        `json:"thumbnail"`
	Metadata    VideoMetadata `json:"metadata"`
}

// MediaDetails is the answer of GET media/...; exactly one field is set.
type MediaDetails struct {
	Collection *CollectionDetails `json:"Collection,omitempty"`
	Video      *VideoDetails      `json:"Video,omitempty"`
	Error      *string            `json:"Error,omitempty"`
}

// SearchEngine names a search backend of the media server.
type SearchEngine string

const (
	YouTube   SearchEngine = "youtube"
	PirateBay SearchEngine = "piratebay"
)

// SearchResult is one hit of a search.
type SearchResult struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Link        string       `json:"link"`
	Engine      SearchEngine `json:"engine"`
}

// ResultsMessage is the envelope of list answers. Results is nil when Error is set.
type ResultsMessage[T any] struct {
	Results []T     `json:"results"`
	Error   *string `json:"error"`
}

// GeneralResponse is returned by mutating endpoints.
type GeneralResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// TaskType names the backend running a task.
type TaskType string

const (
	Transmission TaskType = "transmission"
	AsyncProcess TaskType = "asyncprocess"
)

// TaskState is the progress of a download or conversion.
type TaskState struct {
	Key            string   `json:"key"`
	Name           string   `json:"name"`
	DisplayName    string   `json:"displayName"`
	Finished       bool     `json:"finished"`
	Eta            int      `json:"eta"`
	PercentDone    float64  `json:"percentDone"`
	SizeDetails    string   `json:"sizeDetails"`
	RateDetails    string   `json:"rateDetails"`
	ProcessDetails string   `json:"processDetails"`
	ErrorString    string   `json:"errorString"`
	TaskType       TaskType `json:"taskType"`
}

// TaskRequest starts a download from a search result.
type TaskRequest struct {
	Name   string       `json:"name"`
	Link   string       `json:"link"`
	Engine SearchEngine `json:"engine"`
}

// Conversion is an operation the server can apply to a video.
type Conversion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ConversionRequest starts a conversion.
type ConversionRequest struct {
	Name string `json:"name"`
}

// RenameRequest renames a video.
type RenameRequest struct {
	NewName string `json:"newName"`
}

// LogRequest ships client log lines to the server.
type LogRequest struct {
	Level    string   `json:"level"`
	Messages []string `json:"messages"`
}
