// Package tarot 解读会话与卡牌库接口
package tarot

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"tarott/app/requests"
	"tarott/pkg/logger"
	"tarott/pkg/response"
	"tarott/pkg/session"
)

// SessionController 解读会话，一个会话对应客户端的一次页面访问
type SessionController struct {
	manager *session.Manager
	// 后台提交使用的上下文，服务关闭时取消
	background context.Context
}

// NewSessionController 创建控制器，ctx 取消后未完成的后台提交随之结束
func NewSessionController(ctx context.Context, manager *session.Manager) *SessionController {
	return &SessionController{
		manager:    manager,
		background: ctx,
	}
}

// Store 创建会话
func (sc *SessionController) Store(c *gin.Context) {
	request := requests.CreateSessionRequest{}
	if ok := requests.Validate(c, &request, requests.CreateSession); !ok {
		return
	}

	mode, err := session.ParseMode(request.Type)
	if err != nil {
		response.BadRequest(c, err, "解读类型必须是 single 或 three")
		return
	}

	s, err := sc.manager.Create(mode, request.ReversedEnabled())
	if err != nil {
		if errors.Is(err, session.ErrTooMany) {
			response.Abort503(c, "当前会话过多，请稍后再试")
			return
		}
		logger.LogIf(err)
		response.Abort500(c, "创建会话失败")
		return
	}

	response.Created(c, s.Snapshot())
}

// Show 获取会话状态，deck=1 时附带洗牌结果
func (sc *SessionController) Show(c *gin.Context) {
	s, ok := sc.session(c)
	if !ok {
		return
	}

	if c.Query("deck") == "1" {
		response.Data(c, s.SnapshotWithDeck())
		return
	}
	response.Data(c, s.Snapshot())
}

// Destroy 删除会话，对应页面卸载
func (sc *SessionController) Destroy(c *gin.Context) {
	if !sc.manager.Delete(c.Param("id")) {
		response.Abort404(c, "会话不存在")
		return
	}
	response.Data(c, gin.H{"id": c.Param("id")})
}

// UpdateForm 更新姓名和问题
func (sc *SessionController) UpdateForm(c *gin.Context) {
	s, ok := sc.session(c)
	if !ok {
		return
	}

	request := requests.UpdateFormRequest{}
	if ok := requests.Validate(c, &request, requests.UpdateForm); !ok {
		return
	}

	s.SetName(request.Name)
	s.SetQuestion(request.Question)
	response.Data(c, s.Snapshot())
}

// Select 选牌或取消选牌，会话冻结时不做改动
func (sc *SessionController) Select(c *gin.Context) {
	s, ok := sc.session(c)
	if !ok {
		return
	}

	request := requests.SelectCardRequest{}
	if ok := requests.Validate(c, &request, requests.SelectCard); !ok {
		return
	}

	s.SelectCard(*request.Position)
	response.Data(c, s.Snapshot())
}

// Random 随机选牌，单张模式选一张，三张模式选三张不同的牌
func (sc *SessionController) Random(c *gin.Context) {
	s, ok := sc.session(c)
	if !ok {
		return
	}

	s.RandomSelect()
	response.Data(c, s.Snapshot())
}

// SetReversed 开关逆位，只重新生成朝向
func (sc *SessionController) SetReversed(c *gin.Context) {
	s, ok := sc.session(c)
	if !ok {
		return
	}

	request := requests.SetReversedRequest{}
	if ok := requests.Validate(c, &request, requests.SetReversed); !ok {
		return
	}

	s.SetReversedEnabled(*request.Enabled)
	response.Data(c, s.Snapshot())
}

// Submit 提交解读
//
// 校验不通过时返回 422 和提示；否则默认返回 202，远端调用在后台进行，
// 客户端轮询 Show 获取结果。wait=1 时等待远端返回后再响应。
func (sc *SessionController) Submit(c *gin.Context) {
	s, ok := sc.session(c)
	if !ok {
		return
	}

	sub, advisory := s.Begin()
	if advisory != nil {
		response.Advisory(c, advisory, advisory.Message)
		return
	}

	if c.Query("wait") == "1" {
		sub.Run(c.Request.Context())
		response.Data(c, s.Snapshot())
		return
	}

	snap := s.Snapshot()
	go sub.Run(sc.background)
	response.Accepted(c, snap)
}

// Reset 清空会话并重新洗牌
func (sc *SessionController) Reset(c *gin.Context) {
	s, ok := sc.session(c)
	if !ok {
		return
	}

	s.Reset()
	response.Data(c, s.Snapshot())
}

// session 按路由参数获取会话，不存在时直接响应 404
func (sc *SessionController) session(c *gin.Context) (*session.Session, bool) {
	s, err := sc.manager.Get(c.Param("id"))
	if err != nil {
		response.Abort404(c, "会话不存在")
		return nil, false
	}
	return s, true
}
