package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/nao1215/kvgateway/internal/store"
)

// レスポンスに使う固定文言。
const (
	indexGreeting       = "Hello from Gin app connected to the key-value store!"
	msgRequired         = "Both 'key' and 'value' are required."
	msgMalformed        = "Request body must be a JSON object with string fields 'key' and 'value'."
	msgKeyNotFound      = "Key not found."
	msgRouteNotFound    = "Not found."
	msgMethodNotAllowed = "Method not allowed."
)

// setRequest は POST /set のリクエストボディ。
// requiredは欠落と空文字列の両方を拒否する。
type setRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// handleIndex は固定の挨拶文を返すハンドラを返す。
func (s *Server) handleIndex() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, indexGreeting)
	}
}

// handleSet はキーと値を書き込むハンドラを返す。
// 検証に失敗した場合はストアに触れずに400を返す。
func (s *Server) handleSet() gin.HandlerFunc {
	return func(c *gin.Context) {
		// ShouldBindJSONは先頭の値しか読まないため、ボディ全体を1つのJSONとして解釈する
		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgMalformed})
			return
		}
		var req setRequest
		if err := json.Unmarshal(body, &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgMalformed})
			return
		}
		if err := binding.Validator.ValidateStruct(&req); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				c.JSON(http.StatusBadRequest, gin.H{"error": msgRequired})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": msgMalformed})
			return
		}

		if err := s.store.Set(c.Request.Context(), req.Key, req.Value); err != nil {
			s.internalError(c, err, "setting key", "key", req.Key)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Set %s = %s", req.Key, req.Value),
		})
	}
}

// handleGet はキーの値を返すハンドラを返す。
func (s *Server) handleGet() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("key")

		value, err := s.store.Get(c.Request.Context(), key)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgKeyNotFound})
			return
		}
		if err != nil {
			s.internalError(c, err, "getting key", "key", key)
			return
		}

		c.JSON(http.StatusOK, gin.H{key: value})
	}
}

// handleHealth はストアへの疎通を確認するハンドラを返す。
func (s *Server) handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.store.Ping(c.Request.Context()); err != nil {
			s.logger.Error(err, "store ping failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "service": "kvgateway"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "kvgateway"})
	}
}
