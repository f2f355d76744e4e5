package cloth

// burningHeat is the heat above which a particle renders as burning.
const burningHeat = 0.5

// Ignite raises the particle's heat to at least amount.
func (g *Grid) Ignite(h Handle, amount float64) bool {
	p, ok := g.resolve(h, "ignite")
	if !ok {
		return false
	}
	if amount > p.Heat {
		p.Heat = amount
	}
	return true
}

// Burning reports whether the particle at vertex index i is alight.
func (g *Grid) Burning(i int) bool {
	p := g.Particle(i)
	return p != nil && p.Heat > burningHeat
}

// SpreadFire grows heat from each burning particle and its linked
// neighbours, then destroys every particle whose heat exceeds 1. Growth is
// computed from the heat at the start of the call so visiting order does
// not matter. It returns the number of particles that burned through,
// cascades excluded.
func (g *Grid) SpreadFire(dt float64) int {
	rate := g.params.FireGrowth
	if rate == 0 {
		return 0
	}

	heat := g.heatSpare[:0]
	lit := false
	for _, p := range g.particles {
		h := 0.0
		if p != nil && p.State == Alive {
			h = p.Heat
		}
		if h > 0 {
			lit = true
		}
		heat = append(heat, h)
	}
	g.heatSpare = heat
	if !lit {
		return 0
	}

	var burned []int
	for i, p := range g.particles {
		if p == nil || p.State != Alive {
			continue
		}
		growth := heat[i]
		for _, l := range p.links {
			if l != noLink {
				growth += heat[l]
			}
		}
		p.Heat += rate * growth * dt
		if p.Heat > 1 {
			burned = append(burned, i)
		}
	}

	n := 0
	for _, i := range burned {
		if g.Destroy(i, CauseBurn) {
			n++
		}
	}
	return n
}
