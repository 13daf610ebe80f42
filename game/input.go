package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard input. Called once per frame in
// graphical mode; headless runs never touch raylib input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.autopilot = !g.autopilot
	}

	if rl.IsKeyPressed(rl.KeyF1) {
		g.debugMode = !g.debugMode
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.respawnCar()
	}

	// Drive keys are held, not pressed: sample current state per frame
	g.keyForward = rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp)
	g.keyReverse = rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown)
	g.keyLeft = rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft)
	g.keyRight = rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight)
}
