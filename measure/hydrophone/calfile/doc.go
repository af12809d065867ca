// Package calfile reads hydrophone calibration files.
//
// A calibration file is plain text with a header and a data region separated
// by a line starting with HEADER_END:
//
//	# comment
//	HYD_MFG	Onda
//	HYD_SN	2246
//	DATA_FIELD	FREQ_MHz
//	DATA_FIELD	SENS_VPERPA
//	HEADER_END
//	0.5	5.520e-08
//	1.0	5.875e-08
//
// Header lines of the form key<TAB>value become metadata. DATA_FIELD lines
// declare the data columns in order. Each data line holds one
// whitespace-separated float per declared column. Blank lines and lines
// starting with '#' are ignored everywhere.
//
// Malformed input is reported with errors wrapping [ErrFormat]; the line
// number is available through [SyntaxError].
package calfile
