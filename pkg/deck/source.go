package deck

import (
	"math/rand/v2"
	"time"
)

// Source 可注入的随机数来源，测试中可替换为确定序列
type Source interface {
	// Intn 返回 [0, n) 区间内的非负整数
	Intn(n int) int
}

type pcgSource struct {
	r *rand.Rand
}

// NewSource 返回固定种子的随机源，同一种子产生相同的洗牌结果
func NewSource(seed uint64) Source {
	return &pcgSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandomSource 以当前时间为种子
func NewRandomSource() Source {
	return NewSource(uint64(time.Now().UnixNano()))
}

func (s *pcgSource) Intn(n int) int {
	return s.r.IntN(n)
}
