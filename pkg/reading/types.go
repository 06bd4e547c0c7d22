package reading

import "time"

// DefaultPath 远端解读接口路径
const DefaultPath = "/api/tarot/reading"

// Type 牌阵类型
type Type string

const (
	TypeSingle Type = "single"
	TypeThree  Type = "three"
)

// Config 远端解读服务配置
type Config struct {
	BaseURL string
	Path    string
	Timeout time.Duration
}

// Request 解读请求体。
// SelectedCards 为卡牌在原始牌库中的下标，按选择顺序排列；
// CardOrientations 与之一一对应。
type Request struct {
	Name             string `json:"name"`
	Question         string `json:"question"`
	SelectedCards    []int  `json:"selectedCards"`
	CardOrientations []bool `json:"cardOrientations"`
	Type             Type   `json:"type"`
}

// Response 解读响应，reading 为主字段，message 为备用字段
type Response struct {
	Reading string `json:"reading"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Text 取出解读文本
func (r Response) Text() string {
	if r.Reading != "" {
		return r.Reading
	}
	return r.Message
}
