// SPDX-License-Identifier: EPL-2.0

package mp3_test

import (
	"fmt"
	"log"
	"os"

	"github.com/ik5/pcmplay/formats/mp3"
	"github.com/ik5/pcmplay/formats/wav"
)

// ExampleDecoder_Decode shows how to decode an MP3 file.
func ExampleDecoder_Decode() {
	f, err := os.Open("input.mp3")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	pcm, err := mp3.Decoder{}.Decode(f)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Decoded MP3: %d Hz, %d channels, %v\n",
		pcm.SampleRate(), pcm.Channels(), pcm.Duration())
}

// ExampleDecoder_Decode_convertToWav demonstrates converting MP3 to WAV format.
func ExampleDecoder_Decode_convertToWav() {
	in, err := os.Open("input.mp3")
	if err != nil {
		log.Fatal(err)
	}
	defer in.Close()

	pcm, err := mp3.Decoder{}.Decode(in)
	if err != nil {
		log.Fatal(err)
	}

	out, err := os.Create("output.wav")
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()

	if err := wav.WritePCM(out, pcm); err != nil {
		log.Fatal(err)
	}

	fmt.Println("MP3 converted to WAV")
}
