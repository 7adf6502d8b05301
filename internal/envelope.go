package internal

// Envelope is the uniform response shape used by every endpoint. Failures are
// still HTTP 200 envelopes with Success=false; only permission-guard denials
// carry a 403 status.
type Envelope struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	Data     any       `json:"data"`
	PageInfo *PageInfo `json:"page_info,omitempty"`
	Error    any       `json:"error,omitempty"`
}

type PageInfo struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
}

func Success(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

func Failure(message string, data any) Envelope {
	return Envelope{Success: false, Message: message, Data: data}
}

// Pagination describes a limit/offset window requested by a client.
type Pagination struct {
	Limit  int
	Offset int
}

func (p Pagination) Page() int {
	if p.Limit <= 0 {
		return 1
	}
	return p.Offset/p.Limit + 1
}

// PageOf wraps a full result set with page information. Listing endpoints in
// scope return unpaginated sets, so total and size collapse to the length.
func PageOf[T any](items []T) *PageInfo {
	return &PageInfo{Total: len(items), Page: 1, Size: len(items)}
}
