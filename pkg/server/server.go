// Package server 通过 HTTP 暴露解析、导出、生成与分析接口
package server

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gonewx/spawncycler/pkg/analyzer"
	"github.com/gonewx/spawncycler/pkg/chart"
	"github.com/gonewx/spawncycler/pkg/config"
	"github.com/gonewx/spawncycler/pkg/cycle"
	"github.com/gonewx/spawncycler/pkg/generator"
	"github.com/gonewx/spawncycler/pkg/settings"
)

// Server HTTP 服务
type Server struct {
	engine   *gin.Engine
	presets  *settings.PresetStore
	defaults *config.AnalyzerConfig
}

// New 创建 HTTP 服务
// defaults 为分析接口未指定参数时使用的默认值，可为 nil
func New(presets *settings.PresetStore, defaults *config.AnalyzerConfig) *Server {
	if defaults == nil {
		defaults = config.DefaultAnalyzerConfig()
	}
	s := &Server{
		engine:   gin.Default(),
		presets:  presets,
		defaults: defaults,
	}
	s.routes()
	return s
}

// Handler 返回 http.Handler，便于测试与嵌入
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run 监听 addr 并阻塞
func (s *Server) Run(addr string) error {
	log.Printf("[Server] Listening on %s", addr)
	if err := s.engine.Run(addr); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) routes() {
	r := s.engine

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/presets", s.listPresets)

		api.POST("/parse", s.parse)
		api.POST("/build", s.build)
		api.POST("/serialize", s.serialize)
		api.POST("/generate", s.generate)

		api.POST("/analyze", s.analyze)
		api.POST("/analyze/chart", s.analyzeChart)
	}
}

// LinesRequest 以行为单位提交的 SpawnCycle 文本
type LinesRequest struct {
	Lines []string `json:"lines"`
}

func (s *Server) parse(c *gin.Context) {
	var req LinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	errs := cycle.Parse(req.Lines)
	c.JSON(http.StatusOK, gin.H{"valid": len(errs) == 0, "errors": nonNil(errs)})
}

func (s *Server) build(c *gin.Context) {
	var req LinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Build 跳过无效的记号，同时返回解析错误供调用方参考
	c.JSON(http.StatusOK, gin.H{
		"cycle":  cycle.Build(req.Lines),
		"errors": nonNil(cycle.Parse(req.Lines)),
	})
}

func (s *Server) serialize(c *gin.Context) {
	var req LinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sc, errs := cycle.ParseAndBuild(req.Lines)
	if len(errs) == 0 {
		errs = cycle.ValidateForExport(sc)
	}
	if len(errs) != 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lines": cycle.Serialize(sc), "errors": []string{}})
}

// GenerateRequest 生成请求
// Preset 为预设名称（用户预设优先，其次内置预设），Config 为内联 YAML 预设，二者取其一
type GenerateRequest struct {
	Preset string `json:"preset"`
	Config string `json:"config"`
	Seed   int64  `json:"seed"`
}

func (s *Server) generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		preset *config.GeneratorPreset
		err    error
	)
	switch {
	case req.Config != "":
		preset, err = config.ParseGeneratorPreset([]byte(req.Config))
	case req.Preset != "":
		preset, err = s.presets.Resolve(req.Preset)
		if errors.Is(err, settings.ErrPresetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
	default:
		preset, err = s.presets.Resolve("default")
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params, err := generator.ParamsFromPreset(preset)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sc, err := generator.Generate(params, generator.NewRand(seed))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"lines": cycle.Serialize(sc), "seed": seed})
}

// AnalyzeRequest 分析请求
// Wave 从 1 开始，为 0 时分析全部波次；其余字段未指定时使用服务默认值
type AnalyzeRequest struct {
	Lines         []string `json:"lines"`
	Wave          int      `json:"wave"`
	Difficulty    string   `json:"difficulty"`
	WaveSizeFakes *int     `json:"waveSizeFakes"`
	MaxMonsters   *int     `json:"maxMonsters"`
	ScaleByWSF    *bool    `json:"scaleByWSF"`
}

// analyzerConfig 将请求参数叠加在默认值上
func (s *Server) analyzerConfig(req *AnalyzeRequest) *config.AnalyzerConfig {
	cfg := *s.defaults
	if req.Difficulty != "" {
		cfg.Difficulty = req.Difficulty
	}
	if req.WaveSizeFakes != nil {
		cfg.WaveSizeFakes = *req.WaveSizeFakes
	}
	if req.MaxMonsters != nil {
		cfg.MaxMonsters = *req.MaxMonsters
	}
	if req.ScaleByWSF != nil {
		cfg.ScaleByWSF = req.ScaleByWSF
	}
	return &cfg
}

// sample 解析请求并执行分析，出错时已写出响应
func (s *Server) sample(c *gin.Context) (*analyzer.CycleReport, bool) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	sc, errs := cycle.ParseAndBuild(req.Lines)
	if len(errs) != 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return nil, false
	}

	cfg := s.analyzerConfig(&req)
	if err := cfg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	idx, _ := analyzer.GameLengthIndex(sc.Len())
	params, err := analyzer.ParamsFromConfig(cfg, idx)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	if req.Wave == 0 {
		report, err := analyzer.SampleCycle(sc, params)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return nil, false
		}
		return report, true
	}

	wr, err := analyzer.ReportWave(sc, req.Wave-1, params)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return nil, false
	}
	return &analyzer.CycleReport{Params: params, Waves: []analyzer.WaveReport{wr}, Peak: wr.Peak, Average: wr.Average}, true
}

func (s *Server) analyze(c *gin.Context) {
	report, ok := s.sample(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) analyzeChart(c *gin.Context) {
	report, ok := s.sample(c)
	if !ok {
		return
	}

	opts := chart.DefaultOptions()
	opts.Title = fmt.Sprintf("Difficulty (%s, WSF %d)", config.DifficultyName(report.Params.Difficulty), report.Params.WaveSizeFakes)
	img, err := chart.RenderCycle(report, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := chart.Encode(&buf, img); err != nil {
		log.Printf("[Server] Failed to encode chart: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "encode failed"})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) listPresets(c *gin.Context) {
	builtin, err := config.ListEmbeddedPresets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	user, err := s.presets.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"builtin": nonNil(builtin), "user": nonNil(user)})
}

// nonNil 保证 JSON 输出为 [] 而不是 null
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
