package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"homeplan/internal/api/models"
	"homeplan/internal/model"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

// BuildingHandler serves the building presets shipped with the server.
type BuildingHandler struct {
	buildingDir string
}

// NewBuildingHandler creates a new building handler. The preset directory
// comes from BUILDING_DIR, falling back to examples/buildings under the
// working directory.
func NewBuildingHandler() *BuildingHandler {
	dir := os.Getenv("BUILDING_DIR")
	if dir == "" {
		wd, err := os.Getwd()
		if err == nil {
			dir = filepath.Join(wd, "examples", "buildings")
		} else {
			dir = "./examples/buildings"
		}
	}
	if absDir, err := filepath.Abs(dir); err == nil {
		dir = absDir
	}
	return &BuildingHandler{buildingDir: dir}
}

// ListBuildings handles GET /api/v1/buildings
func (h *BuildingHandler) ListBuildings(c *gin.Context) {
	buildings := []models.BuildingInfo{}

	entries, err := os.ReadDir(h.buildingDir)
	if err != nil {
		log.Printf("BuildingHandler: failed to read %s: %v", h.buildingDir, err)
		c.JSON(http.StatusOK, gin.H{"buildings": buildings})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(h.buildingDir, entry.Name())
		info, err := h.loadBuildingInfo(path, entry.Name())
		if err != nil {
			log.Printf("BuildingHandler: skipping %s: %v", path, err)
			continue
		}
		buildings = append(buildings, *info)
	}

	c.JSON(http.StatusOK, gin.H{"buildings": buildings})
}

func (h *BuildingHandler) loadBuildingInfo(path, filename string) (*models.BuildingInfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Building model.BuildingEnvelope `yaml:"building"`
	}
	if err := yaml.Unmarshal(raw, &wrapper); err != nil {
		return nil, err
	}

	b := wrapper.Building
	return &models.BuildingInfo{
		ID:           strings.TrimSuffix(filename, ".yaml"),
		File:         path,
		FloorAreaM2:  b.LengthM * b.WidthM,
		GlazingRatio: b.GlazingRatio,
		RoofType:     b.RoofType,
	}, nil
}
