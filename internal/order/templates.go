package order

// Markdown line breaks rely on the two trailing spaces kept in these texts.

const marathiText = `📝 **निर्णय-आदेश (अर्धन्यायिक – मराठी मसुदा)**

**कार्यालय :** {{.Officer}}  
**फाईल क्र.:** {{.CaseID}}  
**विषय :** {{.Subject}}  
**दिनांक :** {{.Date}}

**संदर्भ :** {{numbered .Refs}}

⸻

**प्रकरण :**  
सदर प्रकरण {{.Taluka}} तालुक्यातील **{{.Village}}** येथील अंगणवाडी मदतनीस पदावरील निवडीसंबंधी आहे. तक्रारकर्त्या **{{.Complainant}}** यांनी निवड स्थानिक रहिवासी निकषांचा अवलंब न करता {{.Distance}} अंतरावरील उमेदवारास देण्यात आल्याचे मांडले आहे. सदरप्रमाणे सुनावणी **दिनांक {{.HearingDate}} रोजी {{.HearingTime}}** घेण्यात आली.

**सुनावणीत उपस्थित:**{{numbered .Attendees}}

**तपासणी व निष्कर्ष :**  
• उपलब्ध GR व नोंदी परीक्षणावरून – {{.ClauseHint}}  
• ग्रामीण/आदिवासी प्रकल्पांत मदतनीस पदासाठी **संबंधित महसुली गावातील स्थानिक रहिवासी महिला** असणे आवश्यक.  
• सहज उपलब्ध कागदपत्रांनुसार तक्रारकर्त्या पात्रता निकष (शैक्षणिक व स्थानिक) पूर्ण करतात.  
• त्यामुळे पूर्वनिवड GR विरुद्ध झालेली दिसते.

⸻

**आदेश :**  
1) {{.Village}} येथील मदतनीस पदाची **पूर्वीची निवड रद्द** करण्यात येते.  
2) शासन निर्णयातील अटीप्रमाणे **स्थानीय पात्र उमेदवार** (**{{.Complainant}}**, रा. {{.Village}}, ता. {{.Taluka}}) यांची निवड व नियुक्ती मान्य करण्यात येते.  
3) संबंधित प्रकल्प अधिकारी यांनी **७ (सात) दिवसांच्या** आत नियुक्ती आदेश निर्गमित करून अनुपालन अहवाल सादर करावा.  
4) कोणाकडे वस्तुनिष्ठ आक्षेप/अतिरीक्त कागदपत्रे असल्यास, ते **१५ दिवसांच्या** आत या कार्यालयास सादर करावीत.

**अपील :**  
वरील आदेशाविरुद्ध असमाधान असल्यास, लागू तरतुदीनुसार **६० दिवसांच्या** आत सक्षम प्राधिकरणाकडे अपील करता येईल.

⸻

(मुख्य कार्यकारी अधिकारी)  
{{.Authority}}
`

const englishText = `📝 **Decision Order (Quasi-Judicial Draft)**

**Office:** {{.Officer}}  
**File No.:** {{.CaseID}}  
**Subject:** {{.Subject}}  
**Date:** {{.Date}}

**Order:**  
On consideration of the record and applicable Government Resolution(s), the **local residency** requirement is mandatory. The earlier selection appears contrary to the GR. The complainant **{{.Complainant}}** of **{{.Village}}, {{.Taluka}}** satisfies the eligibility and local criteria.

**Directions:**  
1) The earlier selection is **hereby cancelled**.  
2) The concerned Project Officer shall **select and appoint the eligible local candidate ({{.Complainant}})** and issue the appointment order within **7 days**.  
3) Compliance report be submitted thereafter.  
4) Any aggrieved person may file an appeal before the competent authority within **60 days** as per applicable provisions.

(Chief Executive Officer)  
{{.Authority}}
`
