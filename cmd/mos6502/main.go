package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/emusix/mos6502/cpu"
	"github.com/emusix/mos6502/emulator"
)

func main() {
	var compile string
	var binary string
	var disasm bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".s file to assemble")
	flag.StringVar(&binary, "b", "", "raw binary image to load")
	flag.BoolVar(&disasm, "d", false, "Disassemble, do not execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) != 0 && len(binary) != 0 {
		log.Fatalf("%v: -c and -b are exclusive", os.Args[0])
	}

	mach := emulator.NewMachine()
	mach.Verbose = verbose

	var size int

	switch {
	case len(compile) != 0:
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		prog, err := mach.Assembler().Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		err = mach.LoadProgram(prog)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		size = len(prog.Binary())
	case len(binary) != 0:
		image, err := os.ReadFile(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}

		err = mach.LoadBinary(image)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		size = len(image)
	default:
		flag.Usage()
		os.Exit(1)
	}

	if disasm {
		end := cpu.LOAD_ORIGIN + uint16(size)

		for at := mach.Cpu.Pc; at < end; {
			text, length := mach.Cpu.Disassemble(at)
			fmt.Printf("%04X: %v\n", at, text)
			at += uint16(length)
		}
		return
	}

	err := mach.Run()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Print(mach.Cpu.String())
}
