// Command go6502 maps a flat binary image as ROM and either runs it
// headlessly (printing a disassembly trace with --trace) or drops into the
// interactive debugger.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/hcaron/go6502/bus"
	"github.com/hcaron/go6502/cpu"
	"github.com/hcaron/go6502/debugger"
	"github.com/hcaron/go6502/disassembler"
	"github.com/hcaron/go6502/peripheral"
)

func main() {
	app := &cli.App{
		Name:  "go6502",
		Usage: "load and run a 6502 binary image",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:  "load",
				Value: 0x8000,
				Usage: "address to load the image at",
			},
			&cli.Uint64Flag{
				Name:  "reset",
				Value: 0x8000,
				Usage: "reset/NMI/IRQ vector target to install (ignored if --load-vectors is set and the image supplies its own)",
			},
			&cli.BoolFlag{
				Name:  "load-vectors",
				Usage: "don't map a RAM vector page; the image itself covers 0xFFFA-0xFFFF with its own reset/NMI/IRQ vectors",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "start the interactive step debugger instead of running to completion",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "print a disassembly trace of every instruction executed",
			},
			&cli.IntFlag{
				Name:  "max-steps",
				Value: 1_000_000,
				Usage: "headless execution stops after this many instructions even if the program doesn't halt",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return cli.Exit("usage: go6502 [options] <image>", 1)
	}
	path := c.Args().First()

	image, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	load := uint16(c.Uint64("load"))
	b := bus.New()

	var romHi uint16
	haveROM := len(image) > 0
	if haveROM {
		romHi = load + uint16(len(image)-1)
		rom := peripheral.NewROM(image)
		if err := b.Attach(load, romHi, rom); err != nil {
			return errors.Wrap(err, "attaching program image")
		}
	}
	if load > 0 {
		ram := peripheral.NewRandomRAM(int(load))
		if err := b.Attach(0, load-1, ram); err != nil {
			return errors.Wrap(err, "attaching low RAM")
		}
	}

	// The reset/NMI/IRQ vectors live at 0xFFFA-0xFFFF. Unless the image
	// already covers that range itself (--load-vectors), map a small RAM
	// page there and install all three vectors to point at --reset, so
	// Chip.Reset (and any NMI/IRQ raised later) actually has somewhere to
	// load PC from instead of reading unmapped, always-zero memory.
	const vectorPage = 0xFF00
	if !c.Bool("load-vectors") {
		if !haveROM || romHi < vectorPage {
			vram := peripheral.NewRAM(0x10000 - vectorPage)
			if err := b.Attach(vectorPage, 0xFFFF, vram); err != nil {
				return errors.Wrap(err, "attaching vector page")
			}
			reset := uint16(c.Uint64("reset"))
			b.Write16(cpu.ResetVector, reset)
			b.Write16(cpu.NMIVector, reset)
			b.Write16(cpu.IRQVector, reset)
		} else {
			return errors.New("program image overlaps the vector page (0xFF00-0xFFFF) but --load-vectors was not set")
		}
	}

	chip := cpu.New(b)
	chip.Reset()

	if c.Bool("debug") {
		return debugger.Run(chip, b)
	}

	trace := c.Bool("trace")
	maxSteps := c.Int("max-steps")
	for i := 0; i < maxSteps; i++ {
		if trace {
			line, _ := disassembler.Step(chip.PC, b)
			fmt.Println(line)
		}
		if _, err := chip.Step(); err != nil {
			return errors.Wrap(err, "execution halted")
		}
	}
	fmt.Printf("stopped after %d instructions, %d cycles\n", maxSteps, chip.Cycles())
	return nil
}
