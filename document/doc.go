// Package document streams agendas into and out of Pohoda dataPack
// documents.
//
// A Writer emits the dat:dataPack envelope, then one dat:dataPackItem per
// AddItem call, flushing after each item so nothing is buffered across
// calls. Output is encoded in Windows-1250, the code page Pohoda expects.
//
// A Reader scans a response document for the import root element of one
// agenda kind and hands back each matching element as a standalone
// Fragment. Neither type is safe for concurrent use.
package document
