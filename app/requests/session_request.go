package requests

import (
	"github.com/gin-gonic/gin"
	"github.com/thedevsaddam/govalidator"
)

// CreateSessionRequest 创建会话
type CreateSessionRequest struct {
	Type string `json:"type"`
	// 未传时默认开启逆位
	EnableReversed *bool `json:"enable_reversed"`
}

// createSessionFields 参与 govalidator 校验的字段
type createSessionFields struct {
	Type string `valid:"type"`
}

// ReversedEnabled 是否开启逆位
func (r CreateSessionRequest) ReversedEnabled() bool {
	return r.EnableReversed == nil || *r.EnableReversed
}

// CreateSession 验证创建会话请求
func CreateSession(data interface{}, c *gin.Context) map[string][]string {
	req := data.(*CreateSessionRequest)
	rules := govalidator.MapData{
		"type": []string{"required", "in:single,three"},
	}
	messages := govalidator.MapData{
		"type": []string{
			"required:解读类型为必填项",
			"in:解读类型必须是 single 或 three",
		},
	}
	return validate(&createSessionFields{Type: req.Type}, rules, messages)
}

// UpdateFormRequest 填写姓名和问题，问题是否为空留给提交时判断
type UpdateFormRequest struct {
	Name     string `json:"name" valid:"name"`
	Question string `json:"question" valid:"question"`
}

// UpdateForm 验证表单请求
func UpdateForm(data interface{}, c *gin.Context) map[string][]string {
	rules := govalidator.MapData{
		"name":     []string{"max:100"},
		"question": []string{"max:2000"},
	}
	messages := govalidator.MapData{
		"name": []string{
			"max:姓名长度不能超过 100 个字符",
		},
		"question": []string{
			"max:问题长度不能超过 2000 个字符",
		},
	}
	return validate(data, rules, messages)
}

// SelectCardRequest 按洗牌后的位置选牌
type SelectCardRequest struct {
	Position *int `json:"position"`
}

// SelectCard 验证选牌请求，越界的位置由会话忽略
func SelectCard(data interface{}, c *gin.Context) map[string][]string {
	req := data.(*SelectCardRequest)
	errs := make(map[string][]string)
	if req.Position == nil {
		errs["position"] = append(errs["position"], "位置为必填项")
	}
	return errs
}

// SetReversedRequest 开关逆位
type SetReversedRequest struct {
	Enabled *bool `json:"enabled"`
}

// SetReversed 验证逆位开关请求
func SetReversed(data interface{}, c *gin.Context) map[string][]string {
	req := data.(*SetReversedRequest)
	errs := make(map[string][]string)
	if req.Enabled == nil {
		errs["enabled"] = append(errs["enabled"], "enabled 为必填项")
	}
	return errs
}
