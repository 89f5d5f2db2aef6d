/*
Package evm implements the cubipods virtual machine.

The evm package implements a linear subset of the Ethereum virtual machine. The
code is decoded once into a Program, PUSH immediates included, and the EVM then
steps a program counter over the decoded instructions against a 1024 word stack,
a zero initialised, word aligned memory and a word keyed storage map. There is
no control flow: every run ends at STOP, at the end of the program or at the
first failing instruction.
*/
package evm
