package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/theimaginaryfoundation/axis-agent/salesagent"
	"github.com/theimaginaryfoundation/axis-agent/salesagent/emotion"
)

type server struct {
	model        *emotion.Model
	logger       *slog.Logger
	maxBodyBytes int64
}

func (s *server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), s.limitBody())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	v1 := r.Group("/v1")
	{
		v1.POST("/prompts/preview", s.previewPrompt)
		v1.POST("/emotional-state/adjustment", s.adjustment)
		v1.GET("/emotional-state/:key", s.emotionalState)
	}
	return r
}

func (s *server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

func (s *server) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.maxBodyBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBodyBytes)
		}
		c.Next()
	}
}

// previewRequest mirrors what the DNA configuration screen sends: the raw agent record as
// stored by the tenant, plus optional context and node documents.
type previewRequest struct {
	Agent   json.RawMessage `json:"agent" binding:"required"`
	Context json.RawMessage `json:"context"`
	Node    json.RawMessage `json:"node"`

	// Turn defaults to one more than the lead-led turns in the context history.
	Turn  *int   `json:"turn"`
	Token string `json:"token"`

	// UseStore reads the lead's PAD vector from the configured store instead of the context.
	UseStore bool   `json:"use_store"`
	LeadKey  string `json:"lead_key"`
}

type previewResponse struct {
	Prompt     string   `json:"prompt"`
	Runes      int      `json:"runes"`
	Turn       int      `json:"turn"`
	Token      string   `json:"token"`
	LeadKey    string   `json:"lead_key,omitempty"`
	Adjustment string   `json:"adjustment,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}

func (s *server) previewPrompt(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agent, warnings, err := salesagent.ParseAgentConfig(req.Agent)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cc := salesagent.ConversationContext{Scope: salesagent.ScopeReadOnly}
	if len(req.Context) > 0 && string(req.Context) != "null" {
		if cc, err = salesagent.ParseContext(req.Context); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	var node *salesagent.NodeConfig
	if len(req.Node) > 0 && string(req.Node) != "null" {
		n, nodeWarnings, err := salesagent.ParseNodeConfig(req.Node)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		warnings = append(warnings, nodeWarnings...)
		node = &n
	}

	turn := salesagent.CountTurns(cc.History) + 1
	if req.Turn != nil {
		if *req.Turn < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "turn must be >= 0"})
			return
		}
		turn = *req.Turn
	}
	token := strings.TrimSpace(req.Token)
	if token == "" {
		token = salesagent.NewSecurityToken()
	}

	key := strings.TrimSpace(req.LeadKey)
	if key == "" {
		key = salesagent.LeadKey(&agent, &cc)
	}
	adjustment := ""
	switch {
	case req.UseStore:
		v := s.model.GetVector(c.Request.Context(), key)
		adjustment = emotion.AdjustmentText(v)
		if cc.Lead != nil {
			cc.Lead.EmotionalState = &v
		}
	case cc.Lead != nil && cc.Lead.EmotionalState != nil:
		adjustment = emotion.AdjustmentText(*cc.Lead.EmotionalState)
	}

	prompt := salesagent.BuildSystemPrompt(&agent, &cc, adjustment, node, token, turn)
	c.JSON(http.StatusOK, previewResponse{
		Prompt:     prompt,
		Runes:      utf8.RuneCountInString(prompt),
		Turn:       turn,
		Token:      token,
		LeadKey:    key,
		Adjustment: adjustment,
		Warnings:   warnings,
	})
}

type stateResponse struct {
	Key        string         `json:"key,omitempty"`
	PAD        emotion.Vector `json:"pad"`
	Label      string         `json:"label"`
	Adjustment string         `json:"adjustment,omitempty"`
}

func newStateResponse(key string, v emotion.Vector) stateResponse {
	return stateResponse{Key: key, PAD: v, Label: v.Label(), Adjustment: emotion.AdjustmentText(v)}
}

// adjustment renders the prompt text for an arbitrary vector, as the PAD sliders preview does.
func (s *server) adjustment(c *gin.Context) {
	var v emotion.Vector
	if err := c.ShouldBindJSON(&v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, newStateResponse("", v.Clamp()))
}

func (s *server) emotionalState(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing lead key"})
		return
	}
	c.JSON(http.StatusOK, newStateResponse(key, s.model.GetVector(c.Request.Context(), key)))
}
