//go:build atmega328p

package main

import (
	"device/avr"
	"machine"

	"micros/core"
)

// board is the Arduino Uno (ATmega328P at 16MHz)
type board struct{}

func (board) Timer() core.TimerHardware {
	return timer0{}
}

func (board) Serial() core.SerialPort {
	return usart0{machine.UART0}
}

// EnableInterrupts sets the I bit in SREG
func (board) EnableInterrupts() {
	avr.Asm("sei")
}

// usart0 is USART0 on D0 (RX) and D1 (TX), shared with the USB bridge
type usart0 struct {
	*machine.UART
}

func (u usart0) Open(baud uint32) error {
	u.Configure(machine.UARTConfig{BaudRate: baud})
	return nil
}
