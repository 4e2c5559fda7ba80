package response

import "net/http"

// AppError 接口失败信息：HTTP 状态、对外文案与底层原因
// 底层原因只写日志，是否出现在响应体中由调用方决定
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// FailBody 转为 {success:false,message,error?}
func (e *AppError) FailBody(withCause bool) Envelope {
	body := Envelope{Success: false, Message: e.Message}
	if withCause && e.Err != nil {
		body.Error = e.Err.Error()
	}
	return body
}

// ErrorBody 转为 {error}，只暴露对外文案
func (e *AppError) ErrorBody() ErrorBody {
	return ErrorBody{Error: e.Message}
}

// WrapError 包装错误，非错误状态码按 500 处理
func WrapError(status int, message string, err error) *AppError {
	if status < http.StatusBadRequest {
		status = CodeInternal
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return &AppError{
		Status:  status,
		Message: message,
		Err:     err,
	}
}
