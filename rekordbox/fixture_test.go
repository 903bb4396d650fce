package rekordbox

import (
	"strings"
	"testing"
)

const fixtureXML = `<?xml version="1.0" encoding="UTF-8"?>
<DJ_PLAYLISTS Version="1.0.0">
  <PRODUCT Name="rekordbox" Version="6.8.0" Company="AlphaTheta"/>
  <COLLECTION Entries="3">
    <TRACK TrackID="1" Name="Alpha" Artist="Artist A" AverageBpm="128.00" TotalTime="300" Location="file://localhost/Music/Alpha%20Song.mp3" Kind="MP3 File">
      <TEMPO Inizio="0.120" Bpm="128.00" Metro="4/4" Battito="1"/>
      <POSITION_MARK Name="old memory" Type="0" Start="12.000" Num="-1"/>
      <POSITION_MARK Name="old hot" Type="0" Start="30.000" Num="0" Red="40" Green="226" Blue="20"/>
      <POSITION_MARK Name="loop" Type="4" Start="40.000" End="47.500" Num="-1"/>
    </TRACK>
    <TRACK TrackID="2" Name="Beta" Artist="Artist B" AverageBpm="174.00" TotalTime="240" Location="file://localhost/Music/Beta.mp3">
      <TEMPO Inizio="1.000" Bpm="174.00" Metro="4/4" Battito="3"/>
    </TRACK>
    <TRACK TrackID="3" Name="Gamma" TotalTime="200" Location="file://localhost/Music/Gamma.mp3"/>
  </COLLECTION>
  <PLAYLISTS>
    <NODE Type="0" Name="ROOT" Count="2">
      <NODE Type="1" Name="Warmup" KeyType="0" Entries="2">
        <TRACK Key="2"/>
        <TRACK Key="1"/>
      </NODE>
      <NODE Type="0" Name="Sets" Count="1">
        <NODE Type="1" Name="Friday" KeyType="1" Entries="2">
          <TRACK Key="file://localhost/Music/Gamma.mp3"/>
          <TRACK Key="file://localhost/Music/Missing.mp3"/>
        </NODE>
      </NODE>
    </NODE>
  </PLAYLISTS>
</DJ_PLAYLISTS>
`

func parseFixture(t *testing.T) *Library {
	t.Helper()
	lib, err := Parse(strings.NewReader(fixtureXML))
	if err != nil {
		t.Fatalf("Failed to parse fixture: %v", err)
	}
	return lib
}
