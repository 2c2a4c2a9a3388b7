package response

const messageSuccess = "success"

type ErrorDetail struct {
	Key     string `json:"key,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// GeneralResponse is the envelope every endpoint answers with. Errors reuse
// it through exception.ErrorModel.
type GeneralResponse[T any] struct {
	Code         int           `json:"code"`
	Message      string        `json:"message,omitempty"`
	Data         T             `json:"data,omitempty"`
	ErrorDetails []ErrorDetail `json:"error_details,omitempty"`
}

func ToSuccessResponse[T any](data T) GeneralResponse[T] {
	return GeneralResponse[T]{Message: messageSuccess, Data: data}
}

func ToErrorResponse(code int, message string) GeneralResponse[any] {
	return GeneralResponse[any]{Code: code, Message: message}
}

type Page struct {
	Total         int64 `json:"total"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	NumberOfPages int   `json:"num_page"`
}

func NewPage(total int64, page, size int) Page {
	p := Page{Total: total, Page: page, Size: size}
	if size > 0 {
		p.NumberOfPages = int((total + int64(size) - 1) / int64(size))
	}
	return p
}

type PaginationResponse[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Data    []T    `json:"data"`
	Paging  Page   `json:"page"`
}

func ToPaginationResponse[T any](data []T, total int64, page int, size int) PaginationResponse[T] {
	if data == nil {
		data = []T{}
	}
	return PaginationResponse[T]{
		Message: messageSuccess,
		Data:    data,
		Paging:  NewPage(total, page, size),
	}
}
