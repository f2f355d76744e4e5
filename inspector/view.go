package inspector

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drape/cloth"
)

// ParticleView is the flattened, display-ready state of one particle.
type ParticleView struct {
	Index int    `inspect:"label,section:Particle"`
	Cell  string `inspect:"label"`
	State string `inspect:"label"`
	Links string `inspect:"label"`

	Pos r3.Vec `inspect:"vec,section:Motion,name:Position"`
	Vel r3.Vec `inspect:"vec,fmt:%.3f,name:Velocity"` // units per second
	Acc r3.Vec `inspect:"vec,fmt:%.1f,name:Accel"`

	Heat    float64 `inspect:"bar,max:1,section:Status"`
	Pinned  bool
	Grabbed bool

	// Strain is |length-rest|/rest of each live spring, by direction.
	Strain [8]float32 `inspect:"bar,max:0.25,labels:N|NE|E|SE|S|SW|W|NW,section:Springs"`
}

// NewParticleView captures p. dt is the step length used to turn the
// Verlet displacement into a velocity; zero leaves it per step.
func NewParticleView(g *cloth.Grid, p *cloth.Particle, dt float64) ParticleView {
	vel := p.Velocity()
	if dt > 0 {
		vel = r3.Scale(1/dt, vel)
	}
	return ParticleView{
		Index:   p.Index,
		Cell:    fmt.Sprintf("%d,%d", p.CellX, p.CellY),
		State:   p.State.String(),
		Pos:     p.Pos,
		Vel:     vel,
		Acc:     p.Acceleration(),
		Heat:    p.Heat,
		Pinned:  p.Pinned,
		Grabbed: p.Grabbed(),
		Links:   linkSummary(p),
		Strain:  strain(g, p),
	}
}

func strain(g *cloth.Grid, p *cloth.Particle) [8]float32 {
	var out [8]float32
	params := g.Params()
	for d := cloth.North; d <= cloth.NorthWest; d++ {
		q := g.Neighbor(p, d)
		if q == nil {
			continue
		}
		dx, dy := d.Offset()
		rest := params.CellX
		switch {
		case dx != 0 && dy != 0:
			rest = params.Diagonal()
		case dy != 0:
			rest = params.CellY
		}
		l := r3.Norm(r3.Sub(q.Pos, p.Pos))
		out[d] = float32(math.Abs(l-rest) / rest)
	}
	return out
}

// linkSummary lists the directions that still hold a link, e.g. "N E S".
func linkSummary(p *cloth.Particle) string {
	var dirs []string
	for d := cloth.North; d <= cloth.NorthWest; d++ {
		if p.Neighbor(d) >= 0 {
			dirs = append(dirs, d.String())
		}
	}
	if len(dirs) == 0 {
		return "none"
	}
	return strings.Join(dirs, " ")
}
