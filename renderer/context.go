// Package renderer draws the school, tank and threat ray with raylib.
package renderer

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/aquarium/camera"
	"github.com/pthm-cable/aquarium/config"
	"github.com/pthm-cable/aquarium/systems"
)

// Context owns the GPU resources shared by every fish: one mesh, one
// texture and an optional lighting shader. Load once after the window
// exists; Unload before closing it.
type Context struct {
	model   rl.Model
	texture rl.Texture2D
	shader  rl.Shader

	hasTexture bool
	hasShader  bool

	lightPosLoc   int32
	lightColorLoc int32
	viewPosLoc    int32

	lightPos   []float32
	lightColor []float32

	Background rl.Color
	FishTint   rl.Color
	TankColor  rl.Color
	RayColor   rl.Color

	loaded bool
}

// Load acquires the model, texture and shader named in cfg. Missing files
// fall back to a built-in box mesh, an untextured material and raylib's
// default shader. A file that exists but fails to load is an error.
func Load(cfg *config.Config) (*Context, error) {
	rc := cfg.Renderer
	c := &Context{
		lightPos:   vec3Slice(rc.LightPosition),
		lightColor: vec3Slice(rc.LightColor),
		Background: rl.NewColor(rc.Background[0], rc.Background[1], rc.Background[2], 255),
		FishTint:   rl.White,
		TankColor:  rl.NewColor(200, 230, 255, 120),
		RayColor:   rl.NewColor(255, 80, 60, 255),
	}

	if fileExists(rc.ModelPath) {
		c.model = rl.LoadModel(rc.ModelPath)
		if c.model.MeshCount == 0 {
			return nil, fmt.Errorf("loading model %q: no meshes", rc.ModelPath)
		}
	} else {
		if rc.ModelPath != "" {
			slog.Warn("model_missing_using_fallback", "path", rc.ModelPath)
		}
		// Elongated along +Z, the direction fish face in model space
		c.model = rl.LoadModelFromMesh(rl.GenMeshCube(0.6, 0.4, 1.6))
	}

	if fileExists(rc.TexturePath) {
		c.texture = rl.LoadTexture(rc.TexturePath)
		if c.texture.ID == 0 {
			c.unloadPartial()
			return nil, fmt.Errorf("loading texture %q: upload failed", rc.TexturePath)
		}
		rl.SetMaterialTexture(c.model.Materials, rl.MapDiffuse, c.texture)
		c.hasTexture = true
	} else if rc.TexturePath != "" {
		slog.Warn("texture_missing_using_fallback", "path", rc.TexturePath)
		c.FishTint = rl.NewColor(255, 170, 60, 255)
	}

	if err := c.loadShader(rc.VertexShader, rc.FragmentShader); err != nil {
		c.unloadPartial()
		return nil, err
	}

	c.loaded = true
	return c, nil
}

// loadShader installs the lighting shader on the fish material. Both stages
// must exist; otherwise the material keeps raylib's default shader.
func (c *Context) loadShader(vsPath, fsPath string) error {
	if !fileExists(vsPath) || !fileExists(fsPath) {
		if vsPath != "" || fsPath != "" {
			slog.Warn("shader_missing_using_default", "vertex", vsPath, "fragment", fsPath)
		}
		return nil
	}

	c.shader = rl.LoadShader(vsPath, fsPath)
	if c.shader.ID == 0 {
		return errors.New("compiling fish shader")
	}
	c.shader.UpdateLocation(rl.ShaderLocMatrixModel, rl.GetShaderLocation(c.shader, "matModel"))
	c.lightPosLoc = rl.GetShaderLocation(c.shader, "lightPos")
	c.lightColorLoc = rl.GetShaderLocation(c.shader, "lightColor")
	c.viewPosLoc = rl.GetShaderLocation(c.shader, "viewPos")

	rl.SetShaderValue(c.shader, c.lightPosLoc, c.lightPos, rl.ShaderUniformVec3)
	rl.SetShaderValue(c.shader, c.lightColorLoc, c.lightColor, rl.ShaderUniformVec3)

	c.model.Materials.Shader = c.shader
	c.hasShader = true
	return nil
}

// Begin clears the frame and enters 3D mode for cam. Must be called between
// rl.BeginDrawing and rl.EndDrawing.
func (c *Context) Begin(cam *camera.Camera) {
	rl.ClearBackground(c.Background)
	if c.hasShader {
		rl.SetShaderValue(c.shader, c.viewPosLoc, []float32{cam.Position.X(), cam.Position.Y(), cam.Position.Z()}, rl.ShaderUniformVec3)
	}
	rl.BeginMode3D(Camera3D(cam))
}

// Draw renders one fish with a full model transform.
func (c *Context) Draw(transform mgl32.Mat4) {
	c.model.Transform = Matrix(transform)
	rl.DrawModel(c.model, rl.Vector3{}, 1, c.FishTint)
}

// DrawBounds outlines the tank.
func (c *Context) DrawBounds(b systems.Bounds) {
	rl.DrawCubeWiresV(Vector3(b.Center()), Vector3(b.Size()), c.TankColor)
}

// DrawThreat draws the active threat ray out to length.
func (c *Context) DrawThreat(t systems.Threat, length float32) {
	if !t.Active {
		return
	}
	end := t.Origin.Add(t.Direction.Mul(length))
	rl.DrawLine3D(Vector3(t.Origin), Vector3(end), c.RayColor)
}

// End leaves 3D mode.
func (c *Context) End() {
	rl.EndMode3D()
}

// Unload releases GPU resources. Safe to call more than once.
func (c *Context) Unload() {
	if !c.loaded {
		return
	}
	c.unloadPartial()
	c.loaded = false
}

func (c *Context) unloadPartial() {
	if c.hasShader {
		rl.UnloadShader(c.shader)
		c.hasShader = false
	}
	if c.hasTexture {
		rl.UnloadTexture(c.texture)
		c.hasTexture = false
	}
	if c.model.MeshCount > 0 {
		rl.UnloadModel(c.model)
		c.model = rl.Model{}
	}
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func vec3Slice(v config.Vec3) []float32 {
	return []float32{float32(v[0]), float32(v[1]), float32(v[2])}
}
