package session

// AdvisoryKind 提示类型
type AdvisoryKind string

const (
	MissingQuestion     AdvisoryKind = "MissingQuestion"
	IncompleteSelection AdvisoryKind = "IncompleteSelection"
	ServiceFailure      AdvisoryKind = "ServiceFailure"
)

// Level 提示等级，对应前端弹窗样式
type Level string

const (
	LevelWarning Level = "warning"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Advisory 面向用户的结构化提示，所有情况均可由用户操作恢复
type Advisory struct {
	Kind    AdvisoryKind `json:"kind"`
	Level   Level        `json:"level"`
	Title   string       `json:"title"`
	Message string       `json:"message"`
}

func missingQuestion() *Advisory {
	return &Advisory{
		Kind:    MissingQuestion,
		Level:   LevelWarning,
		Title:   "Soru Gerekli",
		Message: "Tarot falınızı baktırabilmek için lütfen sorunuz kısmına sorunuzu yazın. Bu, kartların size en doğru rehberliği sunabilmesi için önemlidir.",
	}
}

func incompleteSelection(mode Mode) *Advisory {
	msg := "Üç kart tarot falı için tam olarak 3 kart seçmeniz gerekmektedir. Lütfen sezgilerinize güvenerek 3 kart seçin."
	if mode == ModeSingle {
		msg = "Lütfen tarot kartlarından birini seçin. Sezgilerinize güvenerek size en uygun kartı seçebilirsiniz."
	}
	return &Advisory{
		Kind:    IncompleteSelection,
		Level:   LevelWarning,
		Title:   "Kart Seçimi Gerekli",
		Message: msg,
	}
}

func serviceFailure() *Advisory {
	return &Advisory{
		Kind:    ServiceFailure,
		Level:   LevelError,
		Title:   "Hata Oluştu",
		Message: "Tarot falınız baktırılırken bir hata oluştu. Lütfen tekrar deneyiniz.",
	}
}
