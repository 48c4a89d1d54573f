// mock-github emulates the slice of the GitHub contents API the intake server
// uses, so the full upload flow can be exercised locally without a real
// repository or credential. Point the server at it with
// GITHUB_BASE_URL=http://localhost:9090.
package main

import (
	"encoding/base64"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/crewsafe/intake/pkg/api"
	"github.com/crewsafe/intake/pkg/logging"
)

// store holds file content keyed by "owner/repo".
type store struct {
	mu    sync.RWMutex
	files map[string]map[string][]byte // repo key → path → content
}

func newStore() *store {
	return &store{files: make(map[string]map[string][]byte)}
}

// put stores content at path. It reports false when the path already exists,
// mirroring the contents API's rejection of a create without a SHA.
func (s *store) put(owner, repo, path string, content []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := owner + "/" + repo
	if s.files[key] == nil {
		s.files[key] = make(map[string][]byte)
	}
	if _, exists := s.files[key][path]; exists {
		return false
	}
	s.files[key][path] = content
	return true
}

func (s *store) get(owner, repo, path string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.files[owner+"/"+repo][path]
	return content, ok
}

func (s *store) paths(owner, repo string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.files[owner+"/"+repo]))
	for path := range s.files[owner+"/"+repo] {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

func main() {
	log := logging.New()
	s := newStore()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	// Reject unauthenticated calls so auth failures are testable locally.
	r.Use(func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Requires authentication"})
		}
	})

	r.PUT("/repos/:owner/:repo/contents/*path", func(c *gin.Context) {
		owner, repo := c.Param("owner"), c.Param("repo")
		path := strings.TrimPrefix(c.Param("path"), "/")

		var req api.ContentsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
			return
		}
		content, err := base64.StdEncoding.DecodeString(req.Content)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "content is not valid Base64"})
			return
		}

		if !s.put(owner, repo, path, content) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": `Invalid request.` + "\n\n" + `"sha" wasn't supplied.`})
			return
		}

		log.Info("file created", "repo", owner+"/"+repo, "path", path, "message", req.Message)
		c.JSON(http.StatusCreated, gin.H{
			"content": gin.H{"path": path},
			"commit":  gin.H{"message": req.Message},
		})
	})

	r.GET("/repos/:owner/:repo/contents/*path", func(c *gin.Context) {
		owner, repo := c.Param("owner"), c.Param("repo")
		path := strings.TrimPrefix(c.Param("path"), "/")

		content, ok := s.get(owner, repo, path)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"name":     path[strings.LastIndex(path, "/")+1:],
			"path":     path,
			"type":     "file",
			"encoding": "base64",
			"content":  base64.StdEncoding.EncodeToString(content),
		})
	})

	// Debug listing of everything stored for a repo.
	r.GET("/repos/:owner/:repo/files", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"paths": s.paths(c.Param("owner"), c.Param("repo"))})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "9090"
	}
	log.Info("starting mock-github", "port", port)
	if err := r.Run(":" + port); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}
