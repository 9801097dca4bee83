package game

import "github.com/pthm-cable/basin/systems"

// Tank is the water supply. Dial 0 opens it fully, dial 1 closes it to MinOutput.
type Tank struct {
	session *Session
	level   float64
}

// ApplyNormalizedValue sets the water supply rate of the current plant.
func (t *Tank) ApplyNormalizedValue(v float64) {
	t.level = systems.Clamp01(v)
	t.session.plant.Water().SupplyRate = t.Output()
}

// Output returns the supply rate for the last dial value.
func (t *Tank) Output() float64 {
	c := t.session.cfg.Tank
	return systems.Lerp(c.MaxOutput, c.MinOutput, t.level)
}

// Level returns the last dial value.
func (t *Tank) Level() float64 { return t.level }

// Thermostat sets the basin temperature. Dial 0 is MaxTemp, dial 1 is MinTemp.
type Thermostat struct {
	session *Session
	level   float64
}

// ApplyNormalizedValue sets the current temperature of the current plant.
func (t *Thermostat) ApplyNormalizedValue(v float64) {
	t.level = systems.Clamp01(v)
	systems.SetThermoFromDial(t.session.plant.Thermo(), t.level)
}

// Level returns the last dial value.
func (t *Thermostat) Level() float64 { return t.level }
